package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"envelope_hvac_calc/constructions"
	"envelope_hvac_calc/hvac"
)

type outputFlags struct {
	format    string
	precision int32
	verbose   bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "出力形式 (text|csv)")
	cmd.Flags().Int32VarP(&o.precision, "precision", "p", 3, "小数点以下の桁数")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "計算ログを標準エラーに出力する")
}

func (o *outputFlags) logger() *log.Logger {
	if o.verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func (o *outputFlags) write(w io.Writer, r *Report) error {
	switch o.format {
	case "text":
		return r.WriteText(w, o.precision)
	case "csv":
		return r.WriteCSV(w, o.precision)
	}
	return fmt.Errorf("unknown format %q (want text or csv)", o.format)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "envelope_hvac_calc",
		Short: "Envelope construction and HVAC rating calculator",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(materialsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "run [job.yaml]",
		Short: "Build the assemblies and equipment of a job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := out.logger()
			start := time.Now()

			job, err := LoadJob(args[0])
			if err != nil {
				return err
			}
			report := run(job, logger)
			logger.Printf("elapsed_time: %v", time.Since(start))
			if err := out.write(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if n := len(report.Failures); n > 0 {
				// 計算できたものは出力済み。終了コードで失敗を知らせる
				cmd.SilenceUsage = true
				return fmt.Errorf("%d of %d assemblies and systems failed", n, len(job.Assemblies)+len(job.Equipment))
			}
			return nil
		},
	}
	out.register(cmd)
	return cmd
}

func rateCmd() *cobra.Command {
	var (
		out    outputFlags
		system string
		speeds int
		seer   float64
		hspf   float64
	)
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Back out rated EER (and COP) from SEER (and HSPF) with default staging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eq, err := rating_equipment(system, speeds, seer, hspf, hvac.SolverOptions{Logger: out.logger()})
			if err != nil {
				return err
			}
			r := &Report{}
			r.add_equipment(eq)
			return out.write(cmd.OutOrStdout(), r)
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&system, "system", "central_ac", "central_ac または heat_pump")
	cmd.Flags().IntVar(&speeds, "speeds", 1, "圧縮機の段数 (1, 2, 4)")
	cmd.Flags().Float64Var(&seer, "seer", 0, "SEER, Btu/Wh (0 で既定値)")
	cmd.Flags().Float64Var(&hspf, "hspf", 0, "HSPF, Btu/Wh (0 で既定値)")
	return cmd
}

// rating_equipment assembles an unsized system from defaults with the given ratings.
func rating_equipment(system string, speeds int, seer, hspf float64, opts hvac.SolverOptions) (Equipment, error) {
	switch system {
	case "central_ac":
		p, err := hvac.DefaultCentralACParams(speeds)
		if err != nil {
			return nil, err
		}
		if seer > 0 {
			p.Cooling.SEER = seer
		}
		p.Solver = opts
		ac, err := hvac.NewCentralAirConditioner(p)
		if err != nil {
			return nil, err
		}
		return ac, nil
	case "heat_pump":
		p, err := hvac.DefaultHeatPumpParams(speeds)
		if err != nil {
			return nil, err
		}
		if seer > 0 {
			p.Cooling.SEER = seer
		}
		if hspf > 0 {
			p.Heating.HSPF = hspf
		}
		p.Solver = opts
		hp, err := hvac.NewAirSourceHeatPump(p)
		if err != nil {
			return nil, err
		}
		return hp, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, system)
}

func materialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the base material library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range constructions.BaseMaterialNames() {
				b, err := constructions.LookupBaseMaterial(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-28s rho %7.2f lb/ft3  cp %5.3f Btu/lb-F  k %6.3f Btu-in/h-ft2-F\n",
					b.Name, b.Rho, b.Cp, b.KIn)
			}
			return nil
		},
	}
}

// Package units converts between the IP units the measures are written in and
// the SI units the host model stores.
package units

// conversion factors, exact to the precision the host model uses
const (
	inPerFt        = 12.0
	mPerIn         = 0.0254
	wmkPerBtuhFtF  = 1.730734666
	kgm3PerLbFt3   = 16.01846337
	jkgkPerBtuLbF  = 4186.8
	m2kwPerHrFt2FB = 0.1761101838
	wPerBtuh       = 0.29307107
	m3sPerCfm      = 0.00047194745
	paPerInH2O     = 249.082
	btuPerWh       = 3.412141633
	btuhPerTon     = 12000.0
)

func InToFt(v float64) float64 { return v / inPerFt }
func FtToIn(v float64) float64 { return v * inPerFt }
func InToM(v float64) float64 { return v * mPerIn }
func MToIn(v float64) float64 { return v / mPerIn }

// conductivity, Btu/h-ft-F <-> W/m-K
func BtuhFtFToWmK(v float64) float64 { return v * wmkPerBtuhFtF }
func WmKToBtuhFtF(v float64) float64 { return v / wmkPerBtuhFtF }

// density, lb/ft3 <-> kg/m3
func LbFt3ToKgM3(v float64) float64 { return v * kgm3PerLbFt3 }
func KgM3ToLbFt3(v float64) float64 { return v / kgm3PerLbFt3 }

// specific heat, Btu/lb-F <-> J/kg-K
func BtuLbFToJKgK(v float64) float64 { return v * jkgkPerBtuLbF }
func JKgKToBtuLbF(v float64) float64 { return v / jkgkPerBtuLbF }

// thermal resistance, hr-ft2-F/Btu <-> m2-K/W
func RIPToSI(v float64) float64 { return v * m2kwPerHrFt2FB }
func RSIToIP(v float64) float64 { return v / m2kwPerHrFt2FB }

// U-factor, Btu/hr-ft2-F <-> W/m2-K
func UIPToSI(v float64) float64 { return v / m2kwPerHrFt2FB }
func USIToIP(v float64) float64 { return v * m2kwPerHrFt2FB }

func FToC(v float64) float64 { return (v - 32.0) * 5.0 / 9.0 }
func CToF(v float64) float64 { return v*9.0/5.0 + 32.0 }
func DeltaFToDeltaC(v float64) float64 { return v * 5.0 / 9.0 }

func BtuhToW(v float64) float64 { return v * wPerBtuh }
func WToBtuh(v float64) float64 { return v / wPerBtuh }
func TonsToBtuh(v float64) float64 { return v * btuhPerTon }
func BtuhToTons(v float64) float64 { return v / btuhPerTon }

func CfmToM3s(v float64) float64 { return v * m3sPerCfm }
func M3sToCfm(v float64) float64 { return v / m3sPerCfm }

func InH2OToPa(v float64) float64 { return v * paPerInH2O }

func WhToBtu(v float64) float64 { return v * btuPerWh }
func BtuToWh(v float64) float64 { return v / btuPerWh }

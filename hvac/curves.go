package hvac

// Performance curve coefficients in IP units, indexed by compressor speed.
// Biquadratic curves take (indoor wet bulb or dry bulb F, outdoor dry bulb F);
// flow curves take the flow fraction of rated.

// cooling, single speed
var (
	CoolCapFTSpec1 = [][]float64{{3.670270705, -0.098652414, 0.000955906, 0.006552414, -0.0000156, -0.000131877}}
	CoolEIRFTSpec1 = [][]float64{{-3.302695861, 0.137871531, -0.001056996, -0.012573945, 0.000214638, -0.000145054}}

	CoolCapFFlowSpec1 = [][]float64{{0.718605468, 0.410099989, -0.128705457}}
	CoolEIRFFlowSpec1 = [][]float64{{1.32299905, -0.477711207, 0.154712157}}
)

// cooling, two speed
var (
	CoolCapFTSpec2 = [][]float64{
		{3.940185508, -0.104723455, 0.001019298, 0.006471171, -0.00000953, -0.000161658},
		{3.109456535, -0.085520461, 0.000863238, 0.00863049, -0.0000210, -0.000140186},
	}
	CoolEIRFTSpec2 = [][]float64{
		{-3.877526888, 0.164121782, -0.001272876, -0.019956043, 0.000256196, -0.000133371},
		{-1.990708931, 0.093969249, -0.00073335, -0.009062553, 0.000165099, -0.0000997},
	}
	CoolCapFFlowSpec2 = [][]float64{
		{0.655239515, 0.511655216, -0.166894731},
		{0.618281092, 0.569060264, -0.187341356},
	}
	CoolEIRFFlowSpec2 = [][]float64{
		{1.639108268, -0.998953996, 0.359845728},
		{1.570774717, -0.914152018, 0.343377302},
	}
)

// cooling, variable speed
var (
	CoolCapFTSpec4 = [][]float64{
		{3.845135427537, -0.095933272242, 0.000924533273, 0.008939030321, -0.000021025870, -0.000191684744},
		{1.902445285801, -0.042809294549, 0.000555959865, 0.009928999493, -0.000013373437, -0.000211453245},
		{-3.176259152730, 0.107498394091, -0.000574951600, 0.005484032413, -0.000011584801, -0.000135528854},
		{1.216308942608, -0.021962441981, 0.000410292252, 0.007362335339, -0.000000025748, -0.000202117724},
	}
	CoolEIRFTSpec4 = [][]float64{
		{-1.087675541, 0.065986178, -0.000508636, -0.016652766, 0.000342249, -0.000262143},
		{-0.394837087, 0.017457074, -0.000080351, -0.009813038, 0.000325307, -0.000243008},
		{1.874878488, -0.033742730, 0.000311771, -0.005191734, 0.000119041, -0.000122977},
		{1.411637796, -0.024394999, 0.000202096, 0.001038032, 0.000070171, -0.000144123},
	}
	CoolCapFFlowSpec4 = [][]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}}
	CoolEIRFFlowSpec4 = [][]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}}
)

// heating, single speed
var (
	HeatCapFTSpec1 = [][]float64{{0.566333415, -0.000744164, -0.0000103, 0.009414634, 0.0000506, -0.0000675}}
	HeatEIRFTSpec1 = [][]float64{{0.718398423, 0.003498178, 0.000142202, -0.005724331, 0.00014085, -0.000215321}}

	HeatCapFFlowSpec1 = [][]float64{{0.694045465, 0.474207981, -0.168253446}}
	HeatEIRFFlowSpec1 = [][]float64{{2.185418751, -1.942827919, 0.757409168}}
)

// heating, two speed
var (
	HeatCapFTSpec2 = [][]float64{
		{0.335690634, 0.002405123, -0.0000464, 0.013498735, 0.0000499, -0.00000725},
		{0.306358843, 0.005376987, -0.0000579, 0.011645092, 0.0000591, -0.0000203},
	}
	HeatEIRFTSpec2 = [][]float64{
		{0.36338171, 0.013523725, 0.000258872, -0.009450269, 0.000439519, -0.000653723},
		{0.981100941, -0.005158493, 0.000243416, -0.005274352, 0.000230742, -0.000336954},
	}
	HeatCapFFlowSpec2 = [][]float64{
		{0.741466907, 0.378645444, -0.119754733},
		{0.76634609, 0.32840943, -0.094701495},
	}
	HeatEIRFFlowSpec2 = [][]float64{
		{2.153618211, -1.737190609, 0.584269478},
		{2.001041353, -1.58869128, 0.587593517},
	}
)

// heating, variable speed
var (
	HeatCapFTSpec4 = [][]float64{
		{0.304192655, -0.003972566, 0.0000196432, 0.024471251, -0.000000774126, -0.0000841323},
		{0.496381324, -0.00144792, 0.0, 0.016020855, 0.0000203447, -0.0000584118},
		{0.697171186, -0.006189599, 0.0000337077, 0.014291981, 0.0000105633, -0.0000387956},
		{0.555513805, -0.001337363, -0.00000265117, 0.014328826, 0.0000163849, -0.0000480711},
	}
	HeatEIRFTSpec4 = [][]float64{
		{0.708311527, 0.020732093, 0.000391479, -0.037640031, 0.000979937, -0.001079042},
		{0.025480155, 0.020169175, 0.000121089, -0.004429478, 0.000166472, -0.00036999},
		{0.379003189, 0.014195012, 0.0000821046, -0.008894061, 0.000151519, -0.000210299},
		{0.690404655, 0.00616619, 0.000137643, -0.009350199, 0.000153427, -0.000213258},
	}
	HeatCapFFlowSpec4 = [][]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}}
	HeatEIRFFlowSpec4 = [][]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}}
)

// DefrostEIRCurve is the reverse-cycle defrost EIR multiplier.
var DefrostEIRCurve = []float64{0.1528, 0, 0, 0, 0, 0}

// CurveSet is the full curve family of one staging.
type CurveSet struct {
	CapFT    [][]float64
	EIRFT    [][]float64
	CapFFlow [][]float64
	EIRFFlow [][]float64
}

// CoolingCurves returns the default cooling curve family for 1, 2 or 4 speeds.
// Central air conditioners and heat pumps share it. The two-speed low-stage
// EIR correlation in CoolingModel.SpeedEERs is the only heat pump difference.
func CoolingCurves(speeds int) (CurveSet, error) {
	switch speeds {
	case 1:
		return CurveSet{CoolCapFTSpec1, CoolEIRFTSpec1, CoolCapFFlowSpec1, CoolEIRFFlowSpec1}, nil
	case 2:
		return CurveSet{CoolCapFTSpec2, CoolEIRFTSpec2, CoolCapFFlowSpec2, CoolEIRFFlowSpec2}, nil
	case 4:
		return CurveSet{CoolCapFTSpec4, CoolEIRFTSpec4, CoolCapFFlowSpec4, CoolEIRFFlowSpec4}, nil
	}
	return CurveSet{}, speedError(speeds)
}

// HeatingCurves returns the default heating curve family for 1, 2 or 4 speeds.
func HeatingCurves(speeds int) (CurveSet, error) {
	switch speeds {
	case 1:
		return CurveSet{HeatCapFTSpec1, HeatEIRFTSpec1, HeatCapFFlowSpec1, HeatEIRFFlowSpec1}, nil
	case 2:
		return CurveSet{HeatCapFTSpec2, HeatEIRFTSpec2, HeatCapFFlowSpec2, HeatEIRFFlowSpec2}, nil
	case 4:
		return CurveSet{HeatCapFTSpec4, HeatEIRFTSpec4, HeatCapFFlowSpec4, HeatEIRFFlowSpec4}, nil
	}
	return CurveSet{}, speedError(speeds)
}

package models

import "github.com/Pain0430/lead-network-toxicology/internal/kinetics"

// Macrophage is the NF-kB inflammation model: lead-induced ROS drives
// saturable nuclear translocation of NF-kB, which induces the cytokines
// TNF-a, IL-6 and IL-1b. Translocation follows Michaelis-Menten kinetics in
// ROS; IL-6 induction is cooperative (Hill) in nuclear NF-kB.
func Macrophage() kinetics.Definition {
	return kinetics.Definition{
		Name: "lead_macrophage",
		Compartments: []kinetics.Compartment{
			{ID: "cytosol", Name: "cytosol"},
			{ID: "nucleus", Name: "nucleus"},
		},
		Species: []kinetics.Species{
			{ID: "Lead", Name: "intracellular lead", Initial: 0, Unit: "uM", Compartment: "cytosol"},
			{ID: "ROS", Name: "reactive oxygen species", Initial: 1, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "SOD", Name: "superoxide dismutase", Initial: 100, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "NFkB_c", Name: "cytosolic NF-kB", Initial: 100, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "NFkB_n", Name: "nuclear NF-kB", Initial: 1, Unit: "a.u.", Compartment: "nucleus"},
			{ID: "TNF", Name: "tumor necrosis factor alpha", Initial: 1, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "IL6", Name: "interleukin 6", Initial: 1, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "IL1b", Name: "interleukin 1 beta", Initial: 1, Unit: "a.u.", Compartment: "cytosol"},
		},
		Parameters: []kinetics.Parameter{
			{ID: "k_lead_ros", Value: 0.1, Unit: "1/h"},
			{ID: "k_ros_sod", Value: 0.01, Unit: "1/(a.u.*h)"},
			{ID: "v_nfkb", Value: 5, Unit: "a.u./h"},
			{ID: "km_nfkb", Value: 2, Unit: "a.u."},
			{ID: "k_nfkb_exp", Value: 0.1, Unit: "1/h"},
			{ID: "k_tnf_syn", Value: 0.2, Unit: "1/h"},
			{ID: "k_tnf_decay", Value: 0.2, Unit: "1/h"},
			{ID: "v_il6", Value: 3, Unit: "a.u./h"},
			{ID: "km_il6", Value: 10, Unit: "a.u."},
			{ID: "k_il6_decay", Value: 0.2, Unit: "1/h"},
			{ID: "k_il1b_syn", Value: 0.1, Unit: "1/h"},
			{ID: "k_il1b_decay", Value: 0.1, Unit: "1/h"},
		},
		Reactions: []kinetics.ReactionDef{
			{
				ID:        "lead_ros",
				Reactants: []kinetics.Stoich{{Species: "Lead", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "ROS", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_lead_ros"},
			},
			{
				ID:        "ros_sod",
				Reactants: []kinetics.Stoich{{Species: "ROS", Coeff: 1}, {Species: "SOD", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_ros_sod"},
			},
			{
				// ROS-gated nuclear import; the rate reads ROS, not the
				// translocating pool itself.
				ID:        "nfkb_import",
				Reactants: []kinetics.Stoich{{Species: "NFkB_c", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "NFkB_n", Coeff: 1}},
				Rate: kinetics.RateDef{
					Kind: kinetics.MichaelisMenten, Vmax: "v_nfkb", Km: "km_nfkb", Substrate: "ROS",
				},
			},
			{
				ID:        "nfkb_export",
				Reactants: []kinetics.Stoich{{Species: "NFkB_n", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "NFkB_c", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_nfkb_exp"},
			},
			{
				ID:        "tnf_syn",
				Reactants: []kinetics.Stoich{{Species: "NFkB_n", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "NFkB_n", Coeff: 1}, {Species: "TNF", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_tnf_syn"},
			},
			{
				ID:        "tnf_decay",
				Reactants: []kinetics.Stoich{{Species: "TNF", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_tnf_decay"},
			},
			{
				ID:       "il6_syn",
				Products: []kinetics.Stoich{{Species: "IL6", Coeff: 1}},
				Rate: kinetics.RateDef{
					Kind: kinetics.Hill, Vmax: "v_il6", Km: "km_il6", Exponent: 2, Substrate: "NFkB_n",
				},
			},
			{
				ID:        "il6_decay",
				Reactants: []kinetics.Stoich{{Species: "IL6", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_il6_decay"},
			},
			{
				ID:        "il1b_syn",
				Reactants: []kinetics.Stoich{{Species: "NFkB_n", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "NFkB_n", Coeff: 1}, {Species: "IL1b", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_il1b_syn"},
			},
			{
				ID:        "il1b_decay",
				Reactants: []kinetics.Stoich{{Species: "IL1b", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_il1b_decay"},
			},
		},
	}
}

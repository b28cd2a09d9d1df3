package models

import "github.com/Pain0430/lead-network-toxicology/internal/kinetics"

// Endothelial is the vascular endothelial cell model: lead-induced oxidative
// stress depletes antioxidant enzymes and eNOS, activates the
// renin-angiotensin axis (ACE -> AngII -> vascular tone) and raises blood
// pressure. Enzyme homeostasis is expressed as zero-order synthesis plus
// first-order decay so every baseline is a steady state at zero lead dose.
func Endothelial() kinetics.Definition {
	return kinetics.Definition{
		Name: "lead_endothelial",
		Compartments: []kinetics.Compartment{
			{ID: "cytosol", Name: "cytosol"},
			{ID: "plasma", Name: "plasma"},
		},
		Species: []kinetics.Species{
			{ID: "Lead", Name: "intracellular lead", Initial: 0, Unit: "uM", Compartment: "cytosol"},
			{ID: "ROS", Name: "reactive oxygen species", Initial: 1, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "SOD", Name: "superoxide dismutase", Initial: 100, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "CAT", Name: "catalase", Initial: 100, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "GPx", Name: "glutathione peroxidase", Initial: 80, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "NOS3", Name: "endothelial nitric oxide synthase", Initial: 100, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "NO", Name: "nitric oxide", Initial: 20, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "ACE", Name: "angiotensin-converting enzyme", Initial: 50, Unit: "a.u.", Compartment: "plasma"},
			{ID: "AngII", Name: "angiotensin II", Initial: 1, Unit: "a.u.", Compartment: "plasma"},
			{ID: "VascularTone", Name: "vascular tone", Initial: 10, Unit: "a.u.", Compartment: "plasma"},
			{ID: "BloodPressure", Name: "systolic blood pressure", Initial: 120, Unit: "mmHg", Compartment: "plasma"},
		},
		Parameters: []kinetics.Parameter{
			{ID: "k_lead_ros", Value: 0.1, Unit: "1/h"},
			{ID: "k_ros_sod", Value: 0.01, Unit: "1/(a.u.*h)"},
			{ID: "k_ros_cat", Value: 0.01, Unit: "1/(a.u.*h)"},
			{ID: "k_ros_gpx", Value: 0.015, Unit: "1/(a.u.*h)"},
			{ID: "k_nos_ros", Value: 0.05, Unit: "1/(a.u.*h)"},
			{ID: "k_nos_no", Value: 0.1, Unit: "1/h"},
			{ID: "k_no_decay", Value: 0.5, Unit: "1/h"},
			{ID: "k_ace_syn", Value: 2.5, Unit: "a.u./h"},
			{ID: "v_ace_lead", Value: 2.5, Unit: "a.u./h"},
			{ID: "km_ace_lead", Value: 5, Unit: "uM"},
			{ID: "k_ace_decay", Value: 0.05, Unit: "1/h"},
			{ID: "k_ace_angii", Value: 0.1, Unit: "1/h"},
			{ID: "k_angii_decay", Value: 5, Unit: "1/h"},
			{ID: "v_tone", Value: 5, Unit: "a.u./h"},
			{ID: "km_tone", Value: 2, Unit: "a.u."},
			{ID: "k_tone_decay", Value: 0.1, Unit: "1/h"},
			{ID: "k_tone_bp", Value: 0.2, Unit: "mmHg/(a.u.*h)"},
			{ID: "k_bp_base", Value: 10, Unit: "mmHg/h"},
			{ID: "k_bp_relax", Value: 0.1, Unit: "1/h"},
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
				ID:        "ros_cat",
				Reactants: []kinetics.Stoich{{Species: "ROS", Coeff: 1}, {Species: "CAT", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_ros_cat"},
			},
			{
				ID:        "ros_gpx",
				Reactants: []kinetics.Stoich{{Species: "ROS", Coeff: 1}, {Species: "GPx", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_ros_gpx"},
			},
			{
				// ROS inactivates eNOS without being consumed.
				ID:        "nos_ros",
				Reactants: []kinetics.Stoich{{Species: "NOS3", Coeff: 1}, {Species: "ROS", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "ROS", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_nos_ros"},
			},
			{
				ID:        "nos_no",
				Reactants: []kinetics.Stoich{{Species: "NOS3", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "NOS3", Coeff: 1}, {Species: "NO", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_nos_no"},
			},
			{
				ID:        "no_decay",
				Reactants: []kinetics.Stoich{{Species: "NO", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_no_decay"},
			},
			{
				ID:       "ace_syn",
				Products: []kinetics.Stoich{{Species: "ACE", Coeff: 1}},
				Rate:     kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_ace_syn"},
			},
			{
				// Lead-stimulated ACE induction, saturating at high dose.
				ID:       "ace_lead",
				Products: []kinetics.Stoich{{Species: "ACE", Coeff: 1}},
				Rate: kinetics.RateDef{
					Kind: kinetics.MichaelisMenten, Vmax: "v_ace_lead", Km: "km_ace_lead", Substrate: "Lead",
				},
			},
			{
				ID:        "ace_decay",
				Reactants: []kinetics.Stoich{{Species: "ACE", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_ace_decay"},
			},
			{
				ID:        "ace_angii",
				Reactants: []kinetics.Stoich{{Species: "ACE", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "ACE", Coeff: 1}, {Species: "AngII", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_ace_angii"},
			},
			{
				ID:        "angii_decay",
				Reactants: []kinetics.Stoich{{Species: "AngII", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_angii_decay"},
			},
			{
				// Cooperative AngII receptor response.
				ID:       "angii_tone",
				Products: []kinetics.Stoich{{Species: "VascularTone", Coeff: 1}},
				Rate: kinetics.RateDef{
					Kind: kinetics.Hill, Vmax: "v_tone", Km: "km_tone", Exponent: 2, Substrate: "AngII",
				},
			},
			{
				ID:        "tone_decay",
				Reactants: []kinetics.Stoich{{Species: "VascularTone", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_tone_decay"},
			},
			{
				ID:        "tone_bp",
				Reactants: []kinetics.Stoich{{Species: "VascularTone", Coeff: 1}},
				Products:  []kinetics.Stoich{{Species: "VascularTone", Coeff: 1}, {Species: "BloodPressure", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_tone_bp"},
			},
			{
				ID:       "bp_base",
				Products: []kinetics.Stoich{{Species: "BloodPressure", Coeff: 1}},
				Rate:     kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_bp_base"},
			},
			{
				ID:        "bp_relax",
				Reactants: []kinetics.Stoich{{Species: "BloodPressure", Coeff: 1}},
				Rate:      kinetics.RateDef{Kind: kinetics.MassAction, Constant: "k_bp_relax"},
			},
		},
	}
}

package models

import "github.com/Pain0430/lead-network-toxicology/internal/kinetics"

// OxidativeCore is the minimal oxidative-stress network: intracellular lead
// generates reactive oxygen species, which the antioxidant enzymes SOD and
// CAT consume stoichiometrically.
//
//	Lead -> ROS        k1 * Lead
//	ROS + SOD -> 0     k2 * ROS * SOD
//	ROS + CAT -> 0     k3 * ROS * CAT
func OxidativeCore() kinetics.Definition {
	return kinetics.Definition{
		Name: "oxidative_core",
		Compartments: []kinetics.Compartment{
			{ID: "cytosol", Name: "cytosol"},
		},
		Species: []kinetics.Species{
			{ID: "Lead", Name: "intracellular lead", Initial: 10, Unit: "uM", Compartment: "cytosol"},
			{ID: "ROS", Name: "reactive oxygen species", Initial: 1, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "SOD", Name: "superoxide dismutase", Initial: 100, Unit: "a.u.", Compartment: "cytosol"},
			{ID: "CAT", Name: "catalase", Initial: 100, Unit: "a.u.", Compartment: "cytosol"},
		},
		Parameters: []kinetics.Parameter{
			{ID: "k_lead_ros", Value: 0.1, Unit: "1/h"},
			{ID: "k_ros_sod", Value: 0.01, Unit: "1/(a.u.*h)"},
			{ID: "k_ros_cat", Value: 0.01, Unit: "1/(a.u.*h)"},
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
		},
	}
}

// Package models provides the builtin reaction networks for lead toxicity
// simulation, each as a declarative [kinetics.Definition]:
//
//   - [OxidativeCore]: minimal lead -> ROS network with SOD/CAT scavenging
//   - [Endothelial]: vascular endothelial cell model coupling oxidative
//     stress, NO signaling, the renin-angiotensin system and blood pressure
//   - [Macrophage]: NF-kB inflammation model with saturable activation and
//     cytokine induction
//
// Rate constants and initial concentrations follow the documented reaction
// tables of the lead cardiovascular toxicity study. Units are arbitrary
// (a.u.) except for lead doses (uM) and blood pressure (mmHg).
package models

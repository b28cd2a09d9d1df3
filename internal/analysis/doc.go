// Package analysis condenses simulated trajectories into the scalar
// features consumed by downstream statistical analysis.
//
//   - [Summarize]: per-species steady state, peak, time to peak and AUC
//   - [DoseResponse]: response metric of a target species across the
//     dose grid of a sweep
//
// # Mediation interface
//
// The population-data mediation pipeline consumes the Summary form:
//
//	summaries := analysis.Summarize(outcome.Series)
//	peak := summaries["ROS"].Peak
package analysis

// Package preflight provides readiness checks for the filesystem paths
// and configuration segbake depends on.
//
// These checks run in two contexts:
//   - The bake orchestrator calls RunAll before compiling a timeline.
//     If any check fails, the bake stops before touching the project.
//   - The CLI "segbake preflight" command runs the same checks to
//     display readiness without baking anything.
package preflight

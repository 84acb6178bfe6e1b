// Package io reads tuning jobs from files and writes tuning results.
//
// # Job Files
//
// A job file is TOML. Top-level keys and the [settings] table apply to every
// net; each [[net]] entry may override width, clearance and the target:
//
//	width = 200000
//	clearance = 150000
//
//	[settings]
//	spacing = 600000
//	min_amplitude = 100000
//	max_amplitude = 1000000
//	corner_style = "round"
//
//	[[net]]
//	name = "CLK"
//	target_length = 60000000
//	path = [{x = 0, y = 0}, {x = 40000000, y = 0}]
//
//	[[net]]
//	name = "USB"
//	dual = true
//	gap = 400000
//	target_length = 55000000
//	path = [{x = 0, y = 5000000}, {x = 20000000, y = 5000000, sweep = 90.0}, {x = 25000000, y = 10000000}]
//
//	[[obstacle]]
//	a = {x = 0, y = 2000000}
//	b = {x = 40000000, y = 2000000}
//	width = 200000
//
//	[outline]
//	min = {x = -1000000, y = -3000000}
//	max = {x = 41000000, y = 12000000}
//
// Settings missing from [settings] take their value from
// [meander.DefaultSettings]. Unknown keys are rejected so that typos do not
// silently fall back to defaults. Obstacles and the outline are shared by
// all nets of the file.
//
// JSON job files hold the same structure as a list of [tuning.Request]
// values and are accepted by [ImportFile] based on the file extension.
//
// # Results
//
// [WriteJSON] and [ExportJSON] write tuning results as indented JSON. The
// output can be re-read with [ReadResults].
//
// [meander.DefaultSettings]: github.com/matzehuels/meander/pkg/meander.DefaultSettings
package io

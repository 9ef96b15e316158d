// Package viz draws a running session in the terminal with Bubble Tea.
//
//   - [Model]: steps a session every frame and draws its scene
//   - [Picker]: scenario menu in front of a Model
//   - [Scene]: render sink that keeps object placements
//   - [Canvas]: braille dot canvas
//
// # Key Bindings
//
//	Space       - Pause/Resume
//	N           - Single step
//	R           - Restart with the edited parameters
//	Tab, Up/Down - Select and tune a parameter
//	Left/Right  - Rotate the view
//	+/-         - Zoom
//	</>         - Halve or double the speed
//	P           - Toggle between the energy chart and the scenario's plot
//	T           - Cycle themes
//	S           - Save the scene as SVG
package viz

package render

// Test-only exports of otherwise unexported transform constructors, so
// render_test can exercise the math directly without going through a full
// Renderer.

var (
	ExportDeviceTransform = deviceTransform
	ExportUserToHPGL      = userToHPGL
	ExportCharToHPGL      = charToHPGL
)

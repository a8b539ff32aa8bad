package platform

// PermissionState mirrors the platform's permission values. Notification
// permission reports "default" while undecided; push permission queries report
// "prompt" for the same situation. Both map to the same engine behavior.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionDefault PermissionState = "default"
	PermissionPrompt  PermissionState = "prompt"
)

// Undecided reports whether the user has not answered the permission prompt.
func (p PermissionState) Undecided() bool {
	return p == PermissionDefault || p == PermissionPrompt
}

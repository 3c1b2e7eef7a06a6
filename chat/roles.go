package chat

// Wire-level role names expected by the Gemini API.
const (
	WireUser  = "user"
	WireModel = "model"
)

// ToWire translates an internal role to the provider's wire vocabulary.
// Unknown roles are rejected rather than defaulted to "user"; silently
// mislabeling a turn corrupts the prompt context.
func ToWire(r Role) (string, error) {
	switch r {
	case RoleUser:
		return WireUser, nil
	case RoleAssistant:
		return WireModel, nil
	default:
		return "", &UnknownRoleError{Role: string(r)}
	}
}

// FromWire is the exact inverse of ToWire.
func FromWire(wire string) (Role, error) {
	switch wire {
	case WireUser:
		return RoleUser, nil
	case WireModel:
		return RoleAssistant, nil
	default:
		return "", &UnknownRoleError{Role: wire}
	}
}

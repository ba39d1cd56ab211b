package valueobjects

type MessageType string

const (
	MessageTypeUser  MessageType = "user"
	MessageTypeAdmin MessageType = "admin"
)

func (mt MessageType) String() string {
	return string(mt)
}

func (mt MessageType) IsValid() bool {
	return mt == MessageTypeUser || mt == MessageTypeAdmin
}

func (mt MessageType) IsAdmin() bool {
	return mt == MessageTypeAdmin
}

// MessageTypeForRole derives the message type from the sender's role.
func MessageTypeForRole(isAdmin bool) MessageType {
	if isAdmin {
		return MessageTypeAdmin
	}
	return MessageTypeUser
}

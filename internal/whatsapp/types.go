package whatsapp

// WebhookPayload is the top-level webhook delivery from the Cloud API.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents one business account entry.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps a single change notification.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue holds the message data. Status callbacks share the endpoint
// and carry Statuses instead of Messages.
type ChangeValue struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	Statuses         []Status  `json:"statuses,omitempty"`
}

// Metadata about the receiving phone number.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is a WhatsApp contact.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile has the display name.
type ContactProfile struct {
	Name string `json:"name"`
}

// Message represents an incoming WhatsApp message.
type Message struct {
	From        string       `json:"from"`
	ID          string       `json:"id"`
	Timestamp   string       `json:"timestamp"`
	Type        string       `json:"type"`
	Text        *TextBody    `json:"text,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

// TextBody holds a text message body.
type TextBody struct {
	Body string `json:"body"`
}

// Interactive is the reply a user produces by tapping a button or list row.
type Interactive struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
	ListReply   *ListReply   `json:"list_reply,omitempty"`
}

// ButtonReply identifies the tapped reply button.
type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListReply identifies the selected list row.
type ListReply struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Status represents a message delivery status update.
type Status struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// FirstMessage returns messages[0] of changes[0] of entry[0].
// It reports false for status callbacks and any payload missing a level.
func (p *WebhookPayload) FirstMessage() (Message, bool) {
	if p == nil || p.Object == "" {
		return Message{}, false
	}
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return Message{}, false
	}
	msgs := p.Entry[0].Changes[0].Value.Messages
	if len(msgs) == 0 {
		return Message{}, false
	}
	return msgs[0], true
}

// MessageContent is the decoded body of an inbound message. It is one of
// TextContent, ButtonReplyContent or UnknownContent.
type MessageContent interface {
	isMessageContent()
}

// TextContent is a plain text message.
type TextContent struct {
	Body string
}

// ButtonReplyContent is a tap on an interactive reply button.
type ButtonReplyContent struct {
	ID    string
	Title string
}

// UnknownContent covers every shape this bridge does not handle.
type UnknownContent struct {
	Type string
}

func (TextContent) isMessageContent()        {}
func (ButtonReplyContent) isMessageContent() {}
func (UnknownContent) isMessageContent()     {}

// Content collapses the message into one of the supported variants.
func (m Message) Content() MessageContent {
	switch m.Type {
	case "text":
		if m.Text != nil {
			return TextContent{Body: m.Text.Body}
		}
	case "interactive":
		if m.Interactive != nil && m.Interactive.ButtonReply != nil {
			return ButtonReplyContent{
				ID:    m.Interactive.ButtonReply.ID,
				Title: m.Interactive.ButtonReply.Title,
			}
		}
	}
	return UnknownContent{Type: m.Type}
}

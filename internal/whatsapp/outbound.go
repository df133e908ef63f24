package whatsapp

const (
	messagingProduct    = "whatsapp"
	recipientIndividual = "individual"
)

// Outbound message types.
const (
	TypeInteractive = "interactive"
	TypeImage       = "image"
	TypeText        = "text"
)

// OutboundMessage is the body of a send-message request. Exactly one of
// Interactive, Image or Text is set, matching Type.
type OutboundMessage struct {
	MessagingProduct string              `json:"messaging_product"`
	RecipientType    string              `json:"recipient_type"`
	To               string              `json:"to"`
	Type             string              `json:"type"`
	Interactive      *InteractiveMessage `json:"interactive,omitempty"`
	Image            *ImageMessage       `json:"image,omitempty"`
	Text             *TextMessage        `json:"text,omitempty"`
}

// InteractiveMessage is a button prompt.
type InteractiveMessage struct {
	Type   string            `json:"type"`
	Body   InteractiveBody   `json:"body"`
	Action InteractiveAction `json:"action"`
}

// InteractiveBody is the prompt text shown above the buttons.
type InteractiveBody struct {
	Text string `json:"text"`
}

// InteractiveAction lists the reply buttons.
type InteractiveAction struct {
	Buttons []ReplyButton `json:"buttons"`
}

// ReplyButton is one quick-reply button.
type ReplyButton struct {
	Type  string     `json:"type"`
	Reply ButtonSpec `json:"reply"`
}

// ButtonSpec is the id/label pair of a reply button. The id comes back in
// the button_reply of the user's answer.
type ButtonSpec struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ImageMessage sends an image by URL.
type ImageMessage struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

// TextMessage sends plain text.
type TextMessage struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

func newOutbound(to, typ string) OutboundMessage {
	return OutboundMessage{
		MessagingProduct: messagingProduct,
		RecipientType:    recipientIndividual,
		To:               to,
		Type:             typ,
	}
}

// NewButtonPrompt builds an interactive message with reply buttons.
func NewButtonPrompt(to, body string, buttons ...ButtonSpec) OutboundMessage {
	msg := newOutbound(to, TypeInteractive)
	replies := make([]ReplyButton, 0, len(buttons))
	for _, b := range buttons {
		replies = append(replies, ReplyButton{Type: "reply", Reply: b})
	}
	msg.Interactive = &InteractiveMessage{
		Type:   "button",
		Body:   InteractiveBody{Text: body},
		Action: InteractiveAction{Buttons: replies},
	}
	return msg
}

// NewImage builds an image message. An empty caption is omitted.
func NewImage(to, link, caption string) OutboundMessage {
	msg := newOutbound(to, TypeImage)
	msg.Image = &ImageMessage{Link: link, Caption: caption}
	return msg
}

// NewText builds a plain text message.
func NewText(to, body string) OutboundMessage {
	msg := newOutbound(to, TypeText)
	msg.Text = &TextMessage{Body: body}
	return msg
}

// SendResponse is the Cloud API response to a successful send.
type SendResponse struct {
	MessagingProduct string `json:"messaging_product"`
	Contacts         []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// MessageID returns the id of the first accepted message, if any.
func (r *SendResponse) MessageID() string {
	if r == nil || len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].ID
}

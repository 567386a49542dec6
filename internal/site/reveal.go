package site

import "encoding/json"

// RevealOptions configures the scroll-reveal observer in the page script.
type RevealOptions struct {
	Threshold  float64 `json:"threshold"`
	RootMargin string  `json:"rootMargin"`
	Class      string  `json:"class"`
	Selector   string  `json:"selector"`
}

func DefaultReveal() RevealOptions {
	return RevealOptions{
		Threshold:  0.15,
		RootMargin: "0px 0px -50px 0px",
		Class:      "visible",
		Selector:   ".animate-on-scroll",
	}
}

// Attr is the JSON published on the body's data-reveal attribute.
func (o RevealOptions) Attr() string {
	b, _ := json.Marshal(o)
	return string(b)
}

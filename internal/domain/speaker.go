package domain

// Speaker represents a speaker at the event as published in the CMS.
// swagger:model Speaker
type Speaker struct {
	Name           string       `json:"name"`
	Slug           string       `json:"slug"`
	Title          string       `json:"title,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Company        string       `json:"company,omitempty"`
	Twitter        string       `json:"twitter,omitempty"`
	GitHub         string       `json:"github,omitempty"`
	ImageURL       string       `json:"image_url,omitempty"`
	ImageSquareURL string       `json:"image_square_url,omitempty"`
	Talk           *SpeakerTalk `json:"talk,omitempty"`
}

// SpeakerTalk is the headline talk shown on a speaker's card.
type SpeakerTalk struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

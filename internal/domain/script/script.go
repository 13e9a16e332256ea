package script

// Scene is one narrated beat of a video
type Scene struct {
	ID            int    `json:"id"`
	Type          string `json:"type"`
	Text          string `json:"text"`
	VisualConcept string `json:"visual_concept"`
}

// Script is the narration and visual concept for every scene of a video
type Script struct {
	Title  string  `json:"title"`
	Scenes []Scene `json:"scenes"`
}

package models

// MaxKeyPoints bounds the key points carried on a classification.
const MaxKeyPoints = 10

// Classification places a page in the study taxonomy. Subject, Topic and
// Chapter always hold a taxonomy value or its fallback, never "".
type Classification struct {
	Subject   string   `json:"subject" yaml:"subject"`
	Topic     string   `json:"topic" yaml:"topic"`
	Chapter   string   `json:"chapter" yaml:"chapter"`
	KeyPoints []string `json:"key_points" yaml:"key_points"` // capped at MaxKeyPoints
}

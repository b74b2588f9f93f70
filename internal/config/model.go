package config

// Model is the unified representation of a configuration file.
type Model struct {
	Source      *string
	Output      *string
	RecordTag   *string
	PriorityTag *string
	Separator   *string
	FieldWidth  *int
	Export      *bool
	NoPause     *bool
	ShowAll     *bool
	Priority    *int
	Color       *string
	LogLevel    *string
	LogFormat   *string
	Publish     *Publish
}

// Publish is the format-agnostic representation of a `publish` block.
type Publish struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            string
	InsecureSkipVerify bool
}

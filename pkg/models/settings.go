package models

// Settings represents the application configuration
type Settings struct {
	Editor  EditorSettings  `yaml:"editor" mapstructure:"editor"`
	Session SessionSettings `yaml:"session" mapstructure:"session"`
	UI      UISettings      `yaml:"ui" mapstructure:"ui"`
	Log     LogSettings     `yaml:"log" mapstructure:"log"`
}

// EditorSettings controls editing and search behavior
type EditorSettings struct {
	CaseSensitive   bool `yaml:"case_sensitive" mapstructure:"case_sensitive"`
	ShowLineNumbers bool `yaml:"show_line_numbers" mapstructure:"show_line_numbers"`
	RecentLimit     int  `yaml:"recent_limit" mapstructure:"recent_limit" validate:"min=1,max=50"`
}

// SessionSettings controls where state lives and whether it is restored
type SessionSettings struct {
	Restore   bool   `yaml:"restore" mapstructure:"restore"`
	StateFile string `yaml:"state_file" mapstructure:"state_file"`
}

// UISettings controls UI preferences
type UISettings struct {
	Zoom          int  `yaml:"zoom" mapstructure:"zoom" validate:"min=-5,max=10"`
	ShowStatusBar bool `yaml:"show_status_bar" mapstructure:"show_status_bar"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `yaml:"level" mapstructure:"level" validate:"oneof=trace debug info error"`
	File  string `yaml:"file,omitempty" mapstructure:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			CaseSensitive:   true,
			ShowLineNumbers: true,
			RecentLimit:     10,
		},
		Session: SessionSettings{
			Restore: true,
		},
		UI: UISettings{
			Zoom:          0,
			ShowStatusBar: true,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

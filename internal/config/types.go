package config

// SourceType selects where result datasets are read from.
type SourceType string

const (
	SourceJSON   SourceType = "json"
	SourceSQLite SourceType = "sqlite"
)

// Config is the top-level electionmap configuration, corresponding to .electionmap.yml.
type Config struct {
	DataDir          string          `yaml:"data_dir" koanf:"data_dir"`
	Topology         string          `yaml:"topology" koanf:"topology" validate:"required"`
	TopologyObject   string          `yaml:"topology_object" koanf:"topology_object" validate:"required"`
	IDProperty       string          `yaml:"id_property" koanf:"id_property" validate:"required"`
	NameProperty     string          `yaml:"name_property" koanf:"name_property"`
	Datasets         []DatasetConfig `yaml:"datasets" koanf:"datasets" validate:"dive"`
	ResultsGlob      string          `yaml:"results_glob,omitempty" koanf:"results_glob"`
	DefaultYear      string          `yaml:"default_year" koanf:"default_year" validate:"required"`
	Source           SourceType      `yaml:"source" koanf:"source" validate:"oneof=json sqlite"`
	DatabasePath     string          `yaml:"database_path" koanf:"database_path"`
	HidePanelOnLeave bool            `yaml:"hide_panel_on_leave" koanf:"hide_panel_on_leave"`
	Map              MapConfig       `yaml:"map" koanf:"map"`
	Server           ServerConfig    `yaml:"server" koanf:"server"`
	Site             SiteConfig      `yaml:"site" koanf:"site"`
	Log              LogConfig       `yaml:"log" koanf:"log"`
}

// DatasetConfig names the result document for one election year.
type DatasetConfig struct {
	Year string `yaml:"year" koanf:"year" validate:"required,numeric,len=4"`
	File string `yaml:"file" koanf:"file" validate:"required"`
}

// MapConfig holds the projection and viewport settings.
type MapConfig struct {
	Width  int        `yaml:"width" koanf:"width" validate:"gt=0"`
	Height int        `yaml:"height" koanf:"height" validate:"gt=0"`
	Scale  float64    `yaml:"scale" koanf:"scale" validate:"gt=0"`
	Center [2]float64 `yaml:"center" koanf:"center"`
	Rotate [2]float64 `yaml:"rotate" koanf:"rotate"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port" validate:"min=1,max=65535"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// SiteConfig holds static export settings.
type SiteConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir" validate:"required"`
	NotesFile string `yaml:"notes_file,omitempty" koanf:"notes_file"`
}

// LogConfig selects the zap logger level and encoding.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" koanf:"format" validate:"oneof=console json"`
}

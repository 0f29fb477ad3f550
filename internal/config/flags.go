package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagOutput     = flag.String("o", "", "Output file (default "+DefaultOutputPath+")")
	flagGLTF       = flag.String("gltf", "", "Also write a glTF skeleton preview to this path")
	flagStrict     = flag.Bool("strict", false, "Reject unused elements and non-numeric keyframe values")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file")
	flagDump       = flag.Bool("dump", false, "Print the compiled bone tree")
	flagSaveConfig = flag.String("save-config", "", "Write the effective config to this path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the path given with -save-config.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// InputPath returns the positional model path, or "" if none was given.
func InputPath() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
	if *flagGLTF != "" {
		cfg.Output.GLTFPath = *flagGLTF
	}
	if *flagStrict {
		cfg.Compile.Strict = true
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagDump {
		cfg.Compile.Dump = true
	}
}

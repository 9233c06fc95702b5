package config

const (
	defaultSourceDir         = "~/books/raw"
	defaultLibraryDir        = "~/books/library"
	defaultReportDir         = "~/.local/share/bindery/reports"
	defaultLogDir            = "~/.local/share/bindery/logs"
	defaultAliasFile         = "~/.config/bindery/author_aliases.json"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultMajorityThreshold = 0.8
	defaultMetadataWorkers   = 4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:  defaultSourceDir,
			LibraryDir: defaultLibraryDir,
			ReportDir:  defaultReportDir,
			LogDir:     defaultLogDir,
			AliasFile:  defaultAliasFile,
		},
		Library: Library{
			Extensions: []string{".epub"},
			SkipNames:  []string{"metadata.opf", "cover.jpg", "cover.png"},
			SkipExtensions: []string{
				".opf", ".nfo", ".html", ".jpg", ".jpeg", ".png", ".mobi", ".pdf",
			},
		},
		Resolver: Resolver{
			MajorityThreshold: defaultMajorityThreshold,
			MetadataWorkers:   defaultMetadataWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package main

import (
	"flag"
)

type AppFlags struct {
	GlobalConfigFile string
	HashFile         string
	OutputFile       string
	LogLevel         string
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	hashFile := flag.String("state", "", "Path to the hash store file (overrides config file if set)")
	hashFileAlias := flag.String("s", "", "Alias for -state")

	outputFile := flag.String("output", "", "Path to the XML report output file (overrides config file if set)")
	outputFileAlias := flag.String("o", "", "Alias for -output")

	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config file if set)")
	logLevelAlias := flag.String("l", "", "Alias for -log-level")

	flag.Parse()

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *hashFile != "" {
		flags.HashFile = *hashFile
	} else if *hashFileAlias != "" {
		flags.HashFile = *hashFileAlias
	}

	if *outputFile != "" {
		flags.OutputFile = *outputFile
	} else if *outputFileAlias != "" {
		flags.OutputFile = *outputFileAlias
	}

	if *logLevel != "" {
		flags.LogLevel = *logLevel
	} else if *logLevelAlias != "" {
		flags.LogLevel = *logLevelAlias
	}

	return flags
}

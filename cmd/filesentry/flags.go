package main

import "flag"

type cliFlags struct {
	configFile     string
	encodePassword string
}

func parseFlags() *cliFlags {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	encodePassword := flag.String("encode-password", "", "Print the at-rest encoded form of a mail password and exit.")

	flag.Parse()

	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}

	return &cliFlags{
		configFile:     *configFile,
		encodePassword: *encodePassword,
	}
}

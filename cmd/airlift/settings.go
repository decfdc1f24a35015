package main

import "flag"

type GlobalSettings struct {
	Debug bool
}

func RegisterGlobalFlags(flagset *flag.FlagSet, settings *GlobalSettings) {
	flagset.BoolVar(&settings.Debug, "debug", false, "print step timing output to stderr")
}

package main

import (
	"github.com/davidmdm/conf"

	"github.com/biotsim/airlift/pkg/pipeline"
)

// getConfig resolves the pipeline configuration from the environment.
// The defaults are the paths and tools the demo has always been built with,
// so the zero-config invocation behaves exactly like the original script.
func getConfig() (cfg pipeline.Config, err error) {
	conf.Var(conf.Environ, &cfg.Cargo, "AIRLIFT_CARGO", conf.Default("cargo"))
	conf.Var(conf.Environ, &cfg.WasmOpt, "AIRLIFT_WASM_OPT", conf.Default("wasm-opt"))
	conf.Var(conf.Environ, &cfg.TargetTriple, "AIRLIFT_TARGET_TRIPLE", conf.Default("wasm32-unknown-unknown"))
	conf.Var(conf.Environ, &cfg.TargetDir, "AIRLIFT_TARGET_DIR", conf.Default("target"))
	conf.Var(conf.Environ, &cfg.Artifact, "AIRLIFT_ARTIFACT", conf.Default("biots"))
	conf.Var(conf.Environ, &cfg.DemoDir, "AIRLIFT_DEMO_DIR", conf.Default("demo"))
	conf.Var(conf.Environ, &cfg.OptLevel, "AIRLIFT_OPT_LEVEL", conf.Default("z"))
	err = conf.Environ.Parse()
	return
}

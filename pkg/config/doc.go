// Package config loads renderer and logging settings.
//
// Settings come from, in increasing priority: struct-tag defaults, an
// optional vdom.yaml (or vdom.toml, vdom.json) in the config directory, a
// .env file in the same directory, and VDOM_* environment variables.
//
// # Keys
//
//   - renderer.sync_updates (VDOM_RENDERER_SYNC_UPDATES): render prop
//     updates synchronously instead of deferring them. Default true.
//   - renderer.debug (VDOM_RENDERER_DEBUG): pass the logger to the
//     renderer so it emits lifecycle debug entries. Default false.
//   - log.level (VDOM_LOG_LEVEL): debug, info, warn or error. Default info.
//   - log.format (VDOM_LOG_FORMAT): console or json. Default console.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	log, _ := logger.New(&cfg.Log)
//	r := core.NewRenderer(doc, cfg.Renderer.Options(log))
package config

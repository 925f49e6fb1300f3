// Package factory is a generic registry that builds pluggable modules, such
// as metrics sinks, from configuration. A module is described by a type name
// and a map of raw settings; the registered factory decodes the settings into
// its own struct and returns the implementation.
//
//	reg := factory.NewRegistry[io.Writer]()
//	_ = reg.Register("file", func(conf map[string]any) (io.Writer, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Create(c.Path)
//	})
//	w, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "out"}})
package factory

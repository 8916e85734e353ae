package main

import (
	"os"

	"github.com/rogpeppe/rjson"
)

type config struct {
	Listen string `json:"listen"`
	Debug  bool   `json:"debug"`
}

// loadConfig reads the configuration file at pathname. A missing file is
// not an error: the mock is meant to run with zero setup, so defaults
// apply.
func loadConfig(pathname string) (*config, error) {
	c := &config{Listen: "127.0.0.1:8080"}
	f, err := os.Open(pathname)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	err = rjson.NewDecoder(f).Decode(c)
	return c, err
}

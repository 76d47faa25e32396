package main

import (
	"github.com/sirupsen/logrus"

	"github.com/3dptools/flowcomp/pkg/calibration"
	"github.com/3dptools/flowcomp/pkg/config"
	"github.com/3dptools/flowcomp/pkg/flow"
)

// loadConfig reads the optional config file. A missing file is just the
// defaults.
func loadConfig() (config.Config, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")
	return conf, nil
}

// buildModel loads the calibration table and fits the flow model.
// calibrationFlag, when set, overrides the config file value.
func buildModel(conf config.Config, calibrationFlag string) (*flow.Model, error) {
	path := conf.CalibrationPath()
	if calibrationFlag != "" {
		path = calibrationFlag
	}

	seq, err := calibration.Load(path)
	if err != nil {
		return nil, err
	}

	model, err := flow.New(seq)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("flow model ready, eligible segment lengths (0, %g)", model.MaxLength())
	return model, nil
}

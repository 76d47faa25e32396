package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/3dptools/flowcomp/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	CalibrationPath: ptr.To("flow_model.csv"),
	LogLevel:        ptr.To("info"),
	// Empty means standard error.
	LogFile:            ptr.To(""),
	SplineSamples:      ptr.To(25),
	DiagnosticComments: ptr.To(true),
}

var _ Config = &File{}

// File is a JSON-file-backed Config. A missing or empty file behaves as the
// built-in defaults.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// RawFileConfig is the on-disk shape. Pointer fields distinguish "absent,
// use default" from an explicit zero value.
type RawFileConfig struct {
	CalibrationPath    *string `json:"calibrationPath,omitempty"`
	LogLevel           *string `json:"logLevel,omitempty"`
	LogFile            *string `json:"logFile,omitempty"`
	SplineSamples      *int    `json:"splineSamples,omitempty"`
	DiagnosticComments *bool   `json:"diagnosticComments,omitempty"`
}

func (f *File) CalibrationPath() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.CalibrationPath != nil {
		return *f.c.CalibrationPath
	}
	return *defaultFileConfig.CalibrationPath
}

func (f *File) LogLevel() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LogLevel != nil {
		return *f.c.LogLevel
	}
	return *defaultFileConfig.LogLevel
}

func (f *File) LogFile() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LogFile != nil {
		return *f.c.LogFile
	}
	return *defaultFileConfig.LogFile
}

func (f *File) SplineSamples() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.SplineSamples != nil {
		return *f.c.SplineSamples
	}
	return *defaultFileConfig.SplineSamples
}

func (f *File) DiagnosticComments() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.DiagnosticComments != nil {
		return *f.c.DiagnosticComments
	}
	return *defaultFileConfig.DiagnosticComments
}

func (f *File) SetCalibrationPath(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.CalibrationPath = &s
}

func (f *File) SetLogLevel(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LogLevel = &s
}

func (f *File) SetLogFile(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LogFile = &s
}

func (f *File) SetSplineSamples(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i < 2 {
		panic("spline samples must be at least 2")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SplineSamples = &i
}

func (f *File) SetDiagnosticComments(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DiagnosticComments = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"calibrationPath":    f.CalibrationPath(),
		"logLevel":           f.LogLevel(),
		"logFile":            f.LogFile(),
		"splineSamples":      f.SplineSamples(),
		"diagnosticComments": f.DiagnosticComments(),
	}
}

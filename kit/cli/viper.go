// Package cli binds command-line flags and environment variables into
// plain Go destinations using cobra and viper.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Opt describes one option: a destination pointer, the flag that feeds
// it, a default, and help text. The flag is also readable from the
// environment as PREFIX_FLAG with dashes turned into underscores.
type Opt struct {
	DestP   interface{}
	Flag    string
	Default interface{}
	Desc    string
}

// NewOpt creates a new command line option.
func NewOpt(destP interface{}, flag string, dflt interface{}, desc string) Opt {
	return Opt{
		DestP:   destP,
		Flag:    flag,
		Default: dflt,
		Desc:    desc,
	}
}

// Program describes a runnable command and the options it accepts.
type Program struct {
	// Run is invoked by cobra on execute.
	Run func() error
	// Name doubles as the usage name and the env var prefix.
	Name string
	Opts []Opt
}

// NewCommand builds the cobra command for p. Each option is bound to
// its own viper instance so tests can build commands side by side
// without sharing flag state.
func NewCommand(p *Program) *cobra.Command {
	cmd := &cobra.Command{
		Use:  p.Name,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return p.Run()
		},
	}

	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(p.Name))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, o := range p.Opts {
		bindOption(v, cmd, o)
	}

	return cmd
}

// BindOptions attaches opts to cmd against a fresh viper instance.
// Exposed for commands assembled outside of NewCommand.
func BindOptions(cmd *cobra.Command, opts []Opt) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, o := range opts {
		bindOption(v, cmd, o)
	}
}

func bindOption(v *viper.Viper, cmd *cobra.Command, o Opt) {
	fs := cmd.Flags()
	switch destP := o.DestP.(type) {
	case *string:
		fs.StringVar(destP, o.Flag, stringDefault(o.Default), o.Desc)
		bindFlag(v, cmd, o.Flag)
		*destP = v.GetString(o.Flag)
	case *int:
		d, _ := o.Default.(int)
		fs.IntVar(destP, o.Flag, d, o.Desc)
		bindFlag(v, cmd, o.Flag)
		*destP = v.GetInt(o.Flag)
	case *bool:
		d, _ := o.Default.(bool)
		fs.BoolVar(destP, o.Flag, d, o.Desc)
		bindFlag(v, cmd, o.Flag)
		*destP = v.GetBool(o.Flag)
	case *time.Duration:
		d, _ := o.Default.(time.Duration)
		fs.DurationVar(destP, o.Flag, d, o.Desc)
		bindFlag(v, cmd, o.Flag)
		*destP = v.GetDuration(o.Flag)
	case *[]string:
		d, _ := o.Default.([]string)
		fs.StringSliceVar(destP, o.Flag, d, o.Desc)
		bindFlag(v, cmd, o.Flag)
		*destP = v.GetStringSlice(o.Flag)
	case *zapcore.Level:
		d, _ := o.Default.(zapcore.Level)
		LevelVar(fs, destP, o.Flag, d, o.Desc)
		bindFlag(v, cmd, o.Flag)
		if s := v.GetString(o.Flag); s != "" {
			_ = destP.Set(s)
		}
	default:
		panic(fmt.Errorf("unsupported destination type %T for flag %q", o.DestP, o.Flag))
	}
}

func stringDefault(v interface{}) string {
	s, _ := v.(string)
	return s
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
		panic(err)
	}
}

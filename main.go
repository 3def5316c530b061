package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/iulianpascalau/graphite-check/common"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/factory"
	"github.com/iulianpascalau/graphite-check/runner"
	"github.com/iulianpascalau/graphite-check/threshold"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/urfave/cli"
)

const (
	defaultLogsPath = "logs"
	logFilePrefix   = "graphite-check"
	envUsernameKey  = "GRAPHITE_USERNAME"
	envPasswordKey  = "GRAPHITE_PASSWORD"
)

// appVersion should be populated at build time using ldflags
// Usage examples:
// Linux/macOS:
//
//	go build -v -ldflags="-X main.appVersion=$(git describe --all | cut -c7-32)
var appVersion = "undefined"
var fileLogging common.FileLoggingHandler

var (
	checkHelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}
   {{if len .Authors}}
AUTHOR:
   {{range .Authors}}{{ . }}{{end}}
   {{end}}{{if .Commands}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}
VERSION:
   {{.Version}}
   {{end}}
`

	log = logger.GetOrCreate("main")

	host = cli.StringFlag{
		Name:  "host",
		Usage: "Graphite `host` to query, scheme defaults to http:// when omitted",
	}
	target = cli.StringFlag{
		Name:  "target",
		Usage: "Comma-separated list of metric `target`s to check",
	}
	complexTarget = cli.StringFlag{
		Name:  "complex-target",
		Usage: "A single `target` expression that is never split on commas",
	}
	period = cli.StringFlag{
		Name:  "period",
		Usage: "Lookback `period` in the backend's relative-time grammar, e.g. 2hours or 24hours",
		Value: "2hours",
	}
	updatedSince = cli.Int64Flag{
		Name:  "updated-since",
		Usage: "Maximum `seconds` since the last non-null sample before a series is considered stale",
		Value: 600,
	}
	acceptableDiff = cli.Float64Flag{
		Name:  "acceptable-diff-percentage",
		Usage: "Allowed `percentage` above the recent mean before the increasing check turns critical",
	}
	checkIncreasing = cli.BoolFlag{
		Name:  "check-increasing",
		Usage: "Enable the increasing check",
	}
	greaterThan = cli.BoolFlag{
		Name:  "greater-than",
		Usage: "Flip the breach direction: the measured value falling below a threshold is bad",
	}
	checkLast = cli.StringFlag{
		Name:  "check-last",
		Usage: "Enable the last check with `warn,error,fatal` thresholds (each optional)",
	}
	checkAverage = cli.StringFlag{
		Name:  "check-average",
		Usage: "Enable the average check with `warn,error,fatal` thresholds (each optional)",
	}
	checkAveragePercent = cli.StringFlag{
		Name:  "check-average-percent",
		Usage: "Enable the average-percent check with `warn,error,fatal` percentage thresholds",
	}
	checkPercentile = cli.StringFlag{
		Name:  "check-percentile",
		Usage: "Enable the percentile check with `warn,error,fatal` percentage thresholds",
	}
	percentileRank = cli.IntFlag{
		Name:  "percentile",
		Usage: "Percentile `rank` used by the percentile check",
		Value: 90,
	}
	dataPoints = cli.IntFlag{
		Name:  "data-points",
		Usage: "`Number` of most recent non-null datapoints averaged as the current value",
		Value: 1,
	}
	ignoreNulls = cli.BoolFlag{
		Name:  "ignore-nulls",
		Usage: "Skip freshness warnings and treat all-null series as inapplicable",
	}
	concatOutput = cli.BoolFlag{
		Name:  "concat-output",
		Usage: "Append lower-severity messages onto the final output instead of dropping them",
	}
	shortOutput = cli.BoolFlag{
		Name:  "short-output",
		Usage: "Stop evaluating further severities for a series once one breach is recorded",
	}
	debug = cli.BoolFlag{
		Name:  "debug",
		Usage: "Print debug lines while evaluating",
	}
	username = cli.StringFlag{
		Name:  "username",
		Usage: "HTTP basic auth `username` for the backend",
	}
	password = cli.StringFlag{
		Name:  "password",
		Usage: "HTTP basic auth `password` for the backend",
	}
	authEnvFile = cli.StringFlag{
		Name:  "auth-env-file",
		Usage: "Read basic auth credentials from the provided .env `file` (" + envUsernameKey + ", " + envPasswordKey + ")",
	}
	configFile = cli.StringFlag{
		Name:  "config",
		Usage: "Optional TOML `file` providing defaults for host, period, auth and window flags",
	}
	logLevel = cli.StringFlag{
		Name: "log-level",
		Usage: "This flag specifies the logger `level(s)`. It can contain multiple comma-separated value. For example" +
			", if set to *:INFO the logs for all packages will have the INFO level. However, if set to *:INFO,checks:DEBUG" +
			" the logs for all packages will have the INFO level, excepting the checks package which will receive a DEBUG" +
			" log level.",
		Value: "*:" + logger.LogNone.String(),
	}
	logSaveFile = cli.BoolFlag{
		Name:  "log-save",
		Usage: "Boolean option for enabling log saving. If set, it will automatically save all the logs into a file.",
	}
	workingDirectory = cli.StringFlag{
		Name:  "working-directory",
		Usage: "This flag specifies the `directory` where the plugin will store logs.",
		Value: "",
	}
)

func main() {
	app := cli.NewApp()
	cli.AppHelpTemplate = checkHelpTemplate
	app.Name = "Graphite check plugin"
	app.Version = fmt.Sprintf("%s/%s/%s-%s", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	app.Usage = "Queries a Graphite backend, applies statistical checks on the returned series and reports a " +
		"Nagios-style verdict line with the matching exit code"
	app.Flags = []cli.Flag{
		host,
		target,
		complexTarget,
		period,
		updatedSince,
		acceptableDiff,
		checkIncreasing,
		greaterThan,
		checkLast,
		checkAverage,
		checkAveragePercent,
		checkPercentile,
		percentileRank,
		dataPoints,
		ignoreNulls,
		concatOutput,
		shortOutput,
		debug,
		username,
		password,
		authEnvFile,
		configFile,
		logLevel,
		logSaveFile,
		workingDirectory,
	}
	app.Authors = []cli.Author{
		{
			Name:  "Iulian Pascalau",
			Email: "iulian.pascalau@gmail.com",
		},
	}

	app.Action = run

	defer func() {
		if fileLogging != nil {
			_ = fileLogging.Close()
		}
	}()

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	err := setupLogging(ctx)
	if err != nil {
		return err
	}

	cfg, err := buildRunConfig(ctx)
	if err != nil {
		return exitWith(runner.RenderUnknown(err))
	}

	err = cfg.Validate()
	if err != nil {
		return exitWith(runner.RenderUnknown(err))
	}

	log.Debug("starting evaluation run", "version", appVersion, "host", cfg.Host, "targets", strings.Join(cfg.Targets, ","))

	componentsHandler, err := factory.NewComponentsHandler(cfg)
	if err != nil {
		return exitWith(runner.RenderUnknown(err))
	}

	result, err := componentsHandler.GetRunner().Run(context.Background())
	if err != nil {
		return exitWith(runner.RenderUnknown(err))
	}

	return exitWith(runner.Render(result, cfg.ConcatOutput))
}

func setupLogging(ctx *cli.Context) error {
	level := ctx.GlobalString(logLevel.Name)
	if ctx.GlobalBool(debug.Name) {
		level = "*:" + logger.LogDebug.String()
	}

	err := logger.SetLogLevel(level)
	if err != nil {
		return err
	}

	saveLogFile := ctx.GlobalBool(logSaveFile.Name)
	workingDir := ctx.GlobalString(workingDirectory.Name)
	fileLogging, err = common.AttachFileLogger(log, defaultLogsPath, logFilePrefix, saveLogFile, workingDir)

	return err
}

func buildRunConfig(ctx *cli.Context) (config.RunConfig, error) {
	fileCfg := &config.FileConfig{}
	if ctx.GlobalIsSet(configFile.Name) {
		loaded, err := config.LoadFileConfig(ctx.GlobalString(configFile.Name))
		if err != nil {
			return config.RunConfig{}, err
		}
		fileCfg = loaded
	}

	cfg := config.RunConfig{
		Host:                     stringOr(ctx, host, fileCfg.Host),
		Period:                   stringOr(ctx, period, fileCfg.Period),
		UpdatedSinceSeconds:      int64Or(ctx, updatedSince, fileCfg.UpdatedSinceSeconds),
		AcceptableDiffPercentage: ctx.GlobalFloat64(acceptableDiff.Name),
		CheckIncreasing:          ctx.GlobalBool(checkIncreasing.Name),
		GreaterThan:              ctx.GlobalBool(greaterThan.Name),
		Percentile:               intOr(ctx, percentileRank, fileCfg.Percentile),
		DataPoints:               intOr(ctx, dataPoints, fileCfg.DataPoints),
		IgnoreNulls:              ctx.GlobalBool(ignoreNulls.Name),
		ConcatOutput:             ctx.GlobalBool(concatOutput.Name),
		ShortOutput:              ctx.GlobalBool(shortOutput.Name),
	}

	cfg.Targets = resolveTargets(ctx)

	var err error
	cfg.Username, cfg.Password, err = resolveCredentials(ctx, fileCfg)
	if err != nil {
		return config.RunConfig{}, err
	}

	cfg.CheckLast, cfg.LastLevels, err = resolveLevels(ctx, checkLast)
	if err != nil {
		return config.RunConfig{}, err
	}
	cfg.CheckAverage, cfg.AverageLevels, err = resolveLevels(ctx, checkAverage)
	if err != nil {
		return config.RunConfig{}, err
	}
	cfg.CheckAveragePercent, cfg.AveragePercentLevels, err = resolveLevels(ctx, checkAveragePercent)
	if err != nil {
		return config.RunConfig{}, err
	}
	cfg.CheckPercentile, cfg.PercentileLevels, err = resolveLevels(ctx, checkPercentile)
	if err != nil {
		return config.RunConfig{}, err
	}

	return cfg, nil
}

func resolveTargets(ctx *cli.Context) []string {
	complexValue := ctx.GlobalString(complexTarget.Name)
	if len(complexValue) > 0 {
		return []string{complexValue}
	}

	value := ctx.GlobalString(target.Name)
	if len(value) == 0 {
		return nil
	}

	return strings.Split(value, ",")
}

func resolveLevels(ctx *cli.Context, flag cli.StringFlag) (bool, threshold.Levels, error) {
	if !ctx.GlobalIsSet(flag.Name) {
		return false, threshold.Levels{}, nil
	}

	levels, err := threshold.ParseLevels(ctx.GlobalString(flag.Name))
	if err != nil {
		return false, threshold.Levels{}, err
	}

	return true, levels, nil
}

func resolveCredentials(ctx *cli.Context, fileCfg *config.FileConfig) (string, string, error) {
	if ctx.GlobalIsSet(authEnvFile.Name) {
		envFileContents := map[string]string{
			envUsernameKey: "",
			envPasswordKey: "",
		}
		err := common.ReadEnvFile(ctx.GlobalString(authEnvFile.Name), envFileContents)
		if err != nil {
			return "", "", err
		}

		return envFileContents[envUsernameKey], envFileContents[envPasswordKey], nil
	}

	return stringOr(ctx, username, fileCfg.Username), stringOr(ctx, password, fileCfg.Password), nil
}

func stringOr(ctx *cli.Context, flag cli.StringFlag, fileValue string) string {
	if !ctx.GlobalIsSet(flag.Name) && len(fileValue) > 0 {
		return fileValue
	}

	return ctx.GlobalString(flag.Name)
}

func intOr(ctx *cli.Context, flag cli.IntFlag, fileValue int) int {
	if !ctx.GlobalIsSet(flag.Name) && fileValue > 0 {
		return fileValue
	}

	return ctx.GlobalInt(flag.Name)
}

func int64Or(ctx *cli.Context, flag cli.Int64Flag, fileValue int64) int64 {
	if !ctx.GlobalIsSet(flag.Name) && fileValue > 0 {
		return fileValue
	}

	return ctx.GlobalInt64(flag.Name)
}

// exitWith prints the single verdict line on stdout and maps the exit code
// through urfave's exit error handling
func exitWith(line string, code int) error {
	fmt.Println(line)
	if code == runner.ExitOK {
		return nil
	}

	return cli.NewExitError("", code)
}

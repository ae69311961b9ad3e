package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/opengrab/go-gripper-serial/internal/dispatch"
	"github.com/opengrab/go-gripper-serial/internal/gripper"
	"github.com/opengrab/go-gripper-serial/internal/hal"
	"github.com/opengrab/go-gripper-serial/internal/logging"
	"github.com/opengrab/go-gripper-serial/internal/mqtt"
	"github.com/opengrab/go-gripper-serial/internal/protocol"
	"github.com/opengrab/go-gripper-serial/internal/serialio"
	"github.com/opengrab/go-gripper-serial/internal/web"
)

// Overridden at release build time via -ldflags.
var (
	version   = "1.1.0"
	buildDate = "unknown"
)

const (
	deviceName   = "gripper"
	deviceAuthor = "opengrab"
	internalID   = "GRIPPER"
)

type options struct {
	SerialPort string `long:"serial-port" env:"SERIAL_PORT" default:"/dev/ttyUSB0" description:"Serial device for the command link"`
	SerialBaud int    `long:"serial-baud" env:"SERIAL_BAUD" default:"115200" description:"Serial baud rate"`

	Profile string `long:"profile" env:"GRIPPER_PROFILE" default:"gripper-120" description:"Servo profile preset"`
	Driver  string `long:"pwm-driver" env:"PWM_DRIVER" default:"gpio" choice:"gpio" choice:"pca9685" choice:"fake" description:"PWM backend"`
	Pin     string `long:"pwm-pin" env:"PWM_PIN" default:"18" description:"PWM pin name (gpio driver)"`
	I2CBus  string `long:"i2c-bus" env:"I2C_BUS" description:"I2C bus name (pca9685 driver, empty picks the first)"`
	Channel int    `long:"pwm-channel" env:"PWM_CHANNEL" default:"0" description:"PWM channel (pca9685 driver)"`

	MinAngle   *int  `long:"min-angle" env:"MIN_ANGLE" description:"Override profile minimum angle (deg)"`
	MaxAngle   *int  `long:"max-angle" env:"MAX_ANGLE" description:"Override profile maximum angle (deg)"`
	MinPulseUS *uint `long:"min-pulse-us" env:"MIN_PULSE_US" description:"Override profile minimum pulse width (us)"`
	MaxPulseUS *uint `long:"max-pulse-us" env:"MAX_PULSE_US" description:"Override profile maximum pulse width (us)"`

	Dialect string `long:"dialect" env:"PROTOCOL_DIALECT" default:"delimited" choice:"delimited" choice:"plain" description:"Response framing dialect"`

	MQTTURI    string `long:"mqtt-uri" env:"MQTT_URI" description:"Optional MQTT broker to bridge commands through"`
	MQTTPrefix string `long:"mqtt-topic-prefix" env:"MQTT_TOPIC_PREFIX" default:"gripper" description:"MQTT topic prefix"`

	HTTPPort int `long:"http-port" env:"PORT" description:"HTTP port for metrics and status (0 disables)"`
}

func init() {
	logging.Init()
	if err := godotenv.Load(".env"); err != nil {
		logging.Warn("Unable to load .env")
	}
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, overridden, err := buildConfig(&opts)
	if err != nil {
		logging.Error("Config error: %v", err)
		os.Exit(1)
	}

	pwm, err := buildPWM(&opts, cfg)
	if err != nil {
		logging.Error("PWM setup error: %v", err)
		os.Exit(1)
	}

	grip, err := gripper.New(cfg, pwm)
	if err != nil {
		logging.Error("Gripper setup error: %v", err)
		os.Exit(1)
	}
	defer grip.Release()

	framer, err := protocol.NewFramer(opts.Dialect)
	if err != nil {
		logging.Error("Protocol error: %v", err)
		os.Exit(1)
	}

	identity := protocol.Identity{
		Name:        deviceName,
		ID:          version,
		Date:        buildDate,
		Author:      deviceAuthor,
		InternalID:  internalID,
		ConfigIsSet: boolToInt(overridden),
		PinDef:      cfg.Pin,
	}
	dispatcher := dispatch.New(grip, framer, identity)

	port, err := serialio.Open(opts.SerialPort, opts.SerialBaud)
	if err != nil {
		logging.Error("Serial error: %v", err)
		os.Exit(1)
	}
	defer port.Close()

	go func() {
		if err := serialio.NewListener(port, dispatcher).Serve(); err != nil {
			logging.Error("Serial listener stopped: %v", err)
		}
	}()
	logging.Info("Listening on %s at %d baud (%s dialect, profile %s)",
		opts.SerialPort, opts.SerialBaud, opts.Dialect, opts.Profile)

	if opts.MQTTURI != "" {
		mu, err := url.Parse(opts.MQTTURI)
		if err != nil {
			logging.Error("Error parsing MQTT URI: %v", err)
			os.Exit(1)
		}
		bridge := mqtt.NewBridge(mu, opts.MQTTPrefix)
		if err := bridge.Connect(dispatcher); err != nil {
			logging.Error("MQTT error: %v", err)
			os.Exit(1)
		}
		defer bridge.Disconnect()
	}

	if opts.HTTPPort > 0 {
		go startServer(opts.HTTPPort, grip, opts.Profile)
	}

	logging.Info("Ready")

	waitForExit()

	logging.Info("Terminating")
}

// buildConfig resolves the profile preset and applies any overrides.
// overridden feeds the identity report's configIsSet flag.
func buildConfig(opts *options) (gripper.Config, bool, error) {
	cfg, ok := gripper.Profile(opts.Profile)
	if !ok {
		return gripper.Config{}, false, fmt.Errorf("unknown profile %q (have %v)", opts.Profile, gripper.ProfileNames())
	}

	overridden := false
	if opts.MinAngle != nil {
		cfg.MinAngle = *opts.MinAngle
		overridden = true
	}
	if opts.MaxAngle != nil {
		cfg.MaxAngle = *opts.MaxAngle
		overridden = true
	}
	if opts.MinPulseUS != nil {
		cfg.MinPulseUS = *opts.MinPulseUS
		overridden = true
	}
	if opts.MaxPulseUS != nil {
		cfg.MaxPulseUS = *opts.MaxPulseUS
		overridden = true
	}

	cfg.Pin = pinDef(opts)

	if err := cfg.Validate(); err != nil {
		return gripper.Config{}, false, err
	}
	return cfg, overridden, nil
}

func buildPWM(opts *options, cfg gripper.Config) (hal.PWM, error) {
	switch opts.Driver {
	case "gpio":
		return hal.NewGPIO(opts.Pin, cfg.Frequency, cfg.MaxDuty())
	case "pca9685":
		return hal.NewPCA9685(opts.I2CBus, opts.Channel, cfg.Frequency, cfg.MaxDuty())
	case "fake":
		logging.Warn("Using fake PWM backend, no hardware will move")
		return &hal.Fake{}, nil
	default:
		return nil, fmt.Errorf("unknown PWM driver %q", opts.Driver)
	}
}

// pinDef builds the pin label reported by /state_get.
func pinDef(opts *options) string {
	switch opts.Driver {
	case "pca9685":
		return fmt.Sprintf("pca9685:%d", opts.Channel)
	case "fake":
		return "fake"
	default:
		return "gpio:" + opts.Pin
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func startServer(port int, grip *gripper.Gripper, profile string) {
	logging.Info("Starting HTTP server on port %d", port)

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: web.CreateHandler(grip, profile),
	}
	if err := server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server error: %v", err)
		}
	}
}

func waitForExit() {
	// Set up a channel to receive OS signals so we can gracefully exit
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	<-signalChan
	logging.Info("Exit signal received")
}

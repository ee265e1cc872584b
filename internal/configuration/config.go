package configuration

import (
	"os"
	"time"

	"github.com/markusressel/asus2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// ConfigDir holds the persisted state documents (anime.conf, profile.conf, led.conf)
	ConfigDir string `json:"configDir"`
	// DbPath is the location of the cache database, it may be deleted at any time
	DbPath string `json:"dbPath"`

	SysfsRoot string `json:"sysfsRoot"`
	DevRoot   string `json:"devRoot"`

	Api           ApiConfig          `json:"api"`
	Statistics    StatisticsConfig   `json:"statistics"`
	Profiling     ProfilingConfig    `json:"profiling"`
	Anime         AnimeConfig        `json:"anime"`
	ConfigStore   ConfigStoreConfig  `json:"configStore"`
	Notifications NotificationConfig `json:"notifications"`
	Profiles      ProfilesConfig     `json:"profiles"`
}

type AnimeConfig struct {
	// TickRate is the interval between two frames written to the matrix
	TickRate time.Duration `json:"tickRate"`
}

type ConfigStoreConfig struct {
	AtomicWrites bool `json:"atomicWrites"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("asus2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/asus2go/")
	}

	viper.SetEnvPrefix("asus2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("configDir", "/etc/asus2go")
	viper.SetDefault("dbPath", "/var/cache/asus2go/asus2go.db")
	viper.SetDefault("sysfsRoot", "/sys")
	viper.SetDefault("devRoot", "/dev")

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.socket", "/run/asus2go.sock")

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.host", "localhost")
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)

	viper.SetDefault("anime.tickRate", 50*time.Millisecond)
	viper.SetDefault("configStore.atomicWrites", true)

	viper.SetDefault("profiles.enabled", []string{})
}

// ReadConfigFile loads the config file if one exists, the daemon runs on defaults otherwise
func ReadConfigFile() {
	configPath, err := DetectConfigFile()
	if err != nil {
		ui.Fatal("Error reading config file, %s", err)
	}
	if configPath == "" {
		ui.Info("No configuration file found, using defaults")
	} else {
		ui.Info("Using configuration file at: %s", configPath)
	}

	LoadConfig()
	if err := validateConfig(&CurrentConfig); err != nil {
		ui.Fatal("Invalid configuration: %v", err)
	}
}

// DetectConfigFile reads the config file into viper and returns its path, which is empty if no file was found
func DetectConfigFile() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return "", err
		}
		return "", nil
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed(), nil
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHooks()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		DefaultTrueBoolHookFunc(),
		curvePointsHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

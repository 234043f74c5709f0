package config

import (
	"os"
	"path/filepath"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type GameConfig struct {
	// TickIntervalMS 进度引擎扫描间隔，默认 1000 毫秒。
	TickIntervalMS int `yaml:"tick_interval_ms" mapstructure:"tick_interval_ms"`
	// TimeAcceleration 时间加速除数：完成时刻 = now + buildTime/acceleration。
	TimeAcceleration float64 `yaml:"time_acceleration" mapstructure:"time_acceleration"`
	// NeedSecret 开启后 WS 帧走 AES+zlib（与客户端握手交换密钥）。
	NeedSecret bool `yaml:"need_secret" mapstructure:"need_secret"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// TickIntervalOrDefault 返回配置的 tick 间隔（毫秒），未配置时取 1000。
func (g GameConfig) TickIntervalOrDefault() int {
	if g.TickIntervalMS <= 0 {
		return 1000
	}
	return g.TickIntervalMS
}

// AccelerationOrDefault 返回时间加速除数，未配置时为 1（不加速）。
func (g GameConfig) AccelerationOrDefault() float64 {
	if g.TimeAcceleration <= 0 {
		return 1
	}
	return g.TimeAcceleration
}

// Load 加载配置：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`。
func Load(cfgName string) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName)
		} else {
			load(filepath.Join(curDir, cfgName))
		}
	} else {
		load(findConfigUpward(curDir))
	}

	// 环境变量优先；未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched configs/conf.yml from: " + startDir)
		}
		dir = parent
	}
}

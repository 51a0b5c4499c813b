// Package conf 提供最基础的配置加载功能
//
// CONF_PATH 目录下的每个 toml 文件都是一个独立的配置对象，
// 文件名（不含扩展名）即配置名。默认配置为 sqlpreview.toml。
// 所有配置都可以被同名环境变量覆盖。
package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultName 默认配置文件名
const DefaultName = "sqlpreview"

var path string

var (
	mu    sync.RWMutex
	files map[string]*Conf
)

var (
	// Hostname 主机名
	Hostname = "localhost"
	// AppID 获取 APP_ID
	AppID = "sqlpreview"
	// IsDevEnv 开发环境标志
	IsDevEnv = false
	// IsUatEnv 集成环境标志
	IsUatEnv = false
	// IsProdEnv 生产环境标志
	IsProdEnv = false
	// Env 运行环境
	Env = "dev"
	// Zone 服务区域
	Zone = "sh001"
)

func init() {
	Hostname, _ = os.Hostname()
	if appID := os.Getenv("APP_ID"); appID != "" {
		AppID = appID
	}

	if env := os.Getenv("DEPLOY_ENV"); env != "" {
		Env = env
	} else {
		logger().Warn("env DEPLOY_ENV is empty")
	}

	if zone := os.Getenv("ZONE"); zone != "" {
		Zone = zone
	}

	switch Env {
	case "prod", "pre":
		IsProdEnv = true
	case "uat":
		IsUatEnv = true
	default:
		IsDevEnv = true
	}

	path = os.Getenv("CONF_PATH")

	if path == "" {
		var err error
		if path, err = os.Getwd(); err != nil {
			panic(err)
		}
		logger().WithField("path", path).Debug("use default conf path")
	}

	fs, err := os.ReadDir(path)
	if err != nil {
		panic(err)
	}

	files = make(map[string]*Conf, len(fs)+1)

	for _, f := range fs {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".toml") {
			continue
		}

		v := viper.New()
		v.SetConfigFile(filepath.Join(path, f.Name()))
		if err := v.ReadInConfig(); err != nil {
			panic(err)
		}
		v.AutomaticEnv()

		name := strings.TrimSuffix(f.Name(), ".toml")
		files[name] = &Conf{v}
	}

	// 没有配置文件时仍然可以读取环境变量
	if _, ok := files[DefaultName]; !ok {
		logger().WithField("path", path).Warn(DefaultName + ".toml not found")
		files[DefaultName] = newConf()
	}
}

func newConf() *Conf {
	v := viper.New()
	v.AutomaticEnv()
	return &Conf{v}
}

// Conf 单个配置文件
type Conf struct {
	viper *viper.Viper
}

// GetFloat64 获取浮点数配置
func GetFloat64(key string) float64 { return File(DefaultName).GetFloat64(key) }
func (c *Conf) GetFloat64(key string) float64 {
	return c.viper.GetFloat64(key)
}

// Get 获取字符串配置
func Get(key string) string { return File(DefaultName).Get(key) }
func (c *Conf) Get(key string) string {
	return c.viper.GetString(key)
}

// GetStrings 获取字符串列表
// a,b,c => []string{"a","b","c"}
func GetStrings(key string) (s []string) { return File(DefaultName).GetStrings(key) }
func (c *Conf) GetStrings(key string) (s []string) {
	value := c.Get(key)
	if value == "" {
		return
	}

	for _, v := range strings.Split(value, ",") {
		s = append(s, strings.TrimSpace(v))
	}
	return
}

// GetInt64s 获取数字列表
func GetInt64s(key string) (s []int64, err error) { return File(DefaultName).GetInt64s(key) }
func (c *Conf) GetInt64s(key string) (s []int64, err error) {
	var i int64
	for _, v := range c.GetStrings(key) {
		i, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return
		}
		s = append(s, i)
	}
	return
}

// GetInt 获取整数配置
func GetInt(key string) int { return File(DefaultName).GetInt(key) }
func (c *Conf) GetInt(key string) int {
	return c.viper.GetInt(key)
}

// GetInt64 获取 int64 配置
func GetInt64(key string) int64 { return File(DefaultName).GetInt64(key) }
func (c *Conf) GetInt64(key string) int64 {
	return c.viper.GetInt64(key)
}

// GetDuration 获取时间配置
func GetDuration(key string) time.Duration { return File(DefaultName).GetDuration(key) }
func (c *Conf) GetDuration(key string) time.Duration {
	return c.viper.GetDuration(key)
}

// GetBool 获取配置布尔配置
func GetBool(key string) bool { return File(DefaultName).GetBool(key) }
func (c *Conf) GetBool(key string) bool {
	return c.viper.GetBool(key)
}

// Set 设置配置，仅用于测试
func Set(key string, value string) { File(DefaultName).Set(key, value) }
func (c *Conf) Set(key string, value string) {
	c.viper.Set(key, value)
}

// File 根据文件名获取对应配置对象
// 目前仅支持 toml 文件，不用传扩展名
// 如果要读取 foo.toml 配置，可以 File("foo").Get("bar")
//
// 文件不存在时返回只读取环境变量的空配置
func File(name string) *Conf {
	mu.RLock()
	c, ok := files[name]
	mu.RUnlock()
	if ok {
		return c
	}

	mu.Lock()
	defer mu.Unlock()
	if c, ok = files[name]; !ok {
		c = newConf()
		files[name] = c
	}
	return c
}

// OnConfigChange 注册配置文件变更回调
// 需要在 WatchConfig 之前调用
func OnConfigChange(run func()) {
	mu.RLock()
	defer mu.RUnlock()
	for _, v := range files {
		if v.viper.ConfigFileUsed() == "" {
			continue
		}
		v.viper.OnConfigChange(func(in fsnotify.Event) { run() })
	}
}

// WatchConfig 启动配置变更监听，业务代码不要调用。
func WatchConfig() {
	mu.RLock()
	defer mu.RUnlock()
	for _, v := range files {
		if v.viper.ConfigFileUsed() == "" {
			continue
		}
		v.viper.WatchConfig()
	}
}

var levels = map[string]logrus.Level{
	"panic": logrus.PanicLevel,
	"fatal": logrus.FatalLevel,
	"error": logrus.ErrorLevel,
	"warn":  logrus.WarnLevel,
	"info":  logrus.InfoLevel,
	"debug": logrus.DebugLevel,
}

func logger() *logrus.Entry {
	if level, ok := levels[os.Getenv("LOG_LEVEL")]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	return logrus.WithFields(logrus.Fields{
		"app_id":      AppID,
		"instance_id": Hostname,
		"env":         Env,
	})
}

package config

import "time"

// Base application details
const AppName = "grove"
const ConfigDirName = "grove"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "grove.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Outline defaults
const DefaultPageSize = 10
const DefaultIndentWidth = 2
const DefaultScrollOff = 2
const DefaultWatchDebounce = 200 * time.Millisecond
const DefaultThemeName = "Default Dark"

package config

import "time"

// Base application details
const AppName = "proofpad"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "proofpad.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultSystemClipboard = true

// Analysis defaults
const DefaultAnalysisBaseURL = "http://localhost:8090"
const DefaultDebounceMs = 400
const DefaultRequestTimeoutS = 30

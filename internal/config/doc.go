package config

// Package config loads configuration shared by the desktop app and the CLI
// (YAML file, dotenv file, environment) and exposes Fyne preference-backed
// Settings for the desktop app.

package template

// ConfigTemplate is the commented default configuration written by
// "gdtpack config init".
var ConfigTemplate = `# gdtpack configuration.
# Every value can be overridden with a GDTPACK_* environment variable,
# e.g. GDTPACK_UPDATE_METADATA_URL or GDTPACK_LOGGING_LEVEL.

update:
  # Release document checked for new versions.
  metadata_url: https://raw.githubusercontent.com/gdt-tools/releases/main/updates.json

  # Run the automatic update check once after startup.
  enabled: true

  # Delay between startup and the automatic check.
  check_delay: 1s

  # Timeout applied to metadata and download requests.
  http_timeout: 60s

  # Apply available updates without asking when no terminal is attached.
  auto_apply: false

logging:
  # debug, info, warn or error.
  level: info

  # text or json.
  format: text

  # Log file path. Empty selects the per-user default location.
  file: ""

  # Rotation: megabytes per file, days kept, files kept.
  max_size: 10
  max_age: 7
  max_backups: 3
  compress: false
`

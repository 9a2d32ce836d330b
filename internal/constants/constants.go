package constants

import (
	"time"
)

const (
	// Catalog layout
	CommonAssetsDir   = "common-assets"
	CollectionsDir    = "collections"
	RootProjectDir    = "root-project"
	MacOSToolkitDir   = "macos-ssh-toolkit"
	WindowsToolkitDir = "windows-ssh-toolkit"

	// Collection files
	CatalogEntryFileName    = "catalog-entry.json"
	DevcontainerFileName    = "devcontainer.json"
	VersionFileName         = "VERSION"
	DefaultCollectionName   = "default"
	CatalogURLField         = "catalogURL"
	PostCreateCommandField  = "postCreateCommand"
	ContainerNameField      = "name"
	InstallSubdirectoryName = ".devcontainer"

	// Shared provisioning entry points
	PostCreateWrapperFileName = "postcreate-wrapper.sh"
	ProjectSetupFileName      = "project-setup.sh"
	FunctionsFileName         = "devcontainer-functions.sh"
	CommonReadmeFileName      = "README.md"

	// Host toolkit files
	ToolkitReadmeFileName   = "README.md"
	ToolkitConfigTemplate   = "ssh-config.template"
	ToolkitDaemonScriptName = "ssh-agent-daemon.sh"

	// Defaults
	DefaultCatalogURL        = "https://github.com/devcat-io/devcontainer-catalog.git"
	DefaultMinCatalogVersion = "1.0.0"
	DefaultEnvFileName       = ".env"
	DefaultLogLevel          = "info"
	ConfigDirName            = ".devcat"
	ConfigFileName           = "config.yaml"
	CheckoutDirPrefix        = "devcat-"
	CheckoutRepoDirName      = "catalog"

	// Environment
	EnvVarCatalogURL        = "DEVCAT_CATALOG_URL"
	EnvVarDefaultCatalogURL = "DEVCAT_DEFAULT_CATALOG_URL"
	EnvVarMinCatalogVersion = "DEVCAT_MIN_CATALOG_VERSION"

	// Cleanup
	CleanupAttempts = 3
	CleanupDelay    = 200 * time.Millisecond
)

// ContainerSourceFields are the devcontainer.json keys that tell the runtime
// where the container comes from. At least one must be present.
var ContainerSourceFields = []string{"image", "build", "dockerFile", "dockerComposeFile"}

// PostCreateEntryPoints are the shared scripts a postCreateCommand may call.
var PostCreateEntryPoints = []string{PostCreateWrapperFileName, ProjectSetupFileName}

// TemplateOnlyFiles ship inside collections as examples and are removed after install.
var TemplateOnlyFiles = []string{"aws-profile-map.example.json", "example.env"}

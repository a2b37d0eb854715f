package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// ManifestVersion is the version written into every generated manifest.
	ManifestVersion = "1.0.0"

	// ObjectKeyPrefix is the blob-store prefix under which archives are stored.
	ObjectKeyPrefix = "layers/"

	// ArchiveContentType is the content type sent with every upload.
	ArchiveContentType = "application/zip"

	// MaxLayerNameLength is the longest layer name the registry accepts.
	MaxLayerNameLength = 140

	// MaxDescriptionLength is the longest layer description the registry accepts.
	MaxDescriptionLength = 256
)

var layerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// LayerRequest is the validated input of one pipeline run.
type LayerRequest struct {
	Packages  []string
	LayerName string
}

// ParseLayerRequest splits the space-separated package list and validates
// both fields. Nothing is touched on disk or on the network.
func ParseLayerRequest(packages, layerName string) (LayerRequest, error) {
	specs := strings.Fields(packages)
	if len(specs) == 0 {
		return LayerRequest{}, ErrMissingPackages
	}

	layerName = strings.TrimSpace(layerName)
	if layerName == "" {
		return LayerRequest{}, ErrMissingLayerName
	}

	if err := ValidateLayerName(layerName); err != nil {
		return LayerRequest{}, err
	}

	for _, spec := range specs {
		if err := ValidatePackageSpec(spec); err != nil {
			return LayerRequest{}, err
		}
	}

	return LayerRequest{Packages: specs, LayerName: layerName}, nil
}

// ValidateLayerName checks that name is usable both as a registry layer name
// and as a blob-store key segment.
func ValidateLayerName(name string) error {
	if len(name) > MaxLayerNameLength {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidLayerName, name, MaxLayerNameLength)
	}
	if !layerNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q must contain only letters, digits, hyphens and underscores", ErrInvalidLayerName, name)
	}
	return nil
}

// ValidatePackageSpec rejects specs that the installer would read as a flag.
func ValidatePackageSpec(spec string) error {
	if strings.HasPrefix(spec, "-") {
		return fmt.Errorf("%w: %q looks like a flag", ErrInvalidSpec, spec)
	}
	return nil
}

// ObjectKey returns the deterministic storage key for a layer archive.
// The same layer name always maps to the same key.
func ObjectKey(layerName string) string {
	return ObjectKeyPrefix + layerName + ".zip"
}

// Description builds the registry description for a set of specs.
func Description(specs []string) string {
	desc := "Packages: " + strings.Join(specs, " ")
	if len(desc) > MaxDescriptionLength {
		cut := MaxDescriptionLength - 3
		for cut > 0 && !utf8.RuneStart(desc[cut]) {
			cut--
		}
		desc = desc[:cut] + "..."
	}
	return desc
}

// Manifest is the minimal project descriptor seeded into a workspace so the
// installer runs in project mode.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewManifest returns the manifest for a layer.
func NewManifest(layerName string) Manifest {
	return Manifest{
		Name:         layerName,
		Version:      ManifestVersion,
		Dependencies: map[string]string{},
	}
}

// Workspace is an exclusively-owned directory for one invocation.
type Workspace struct {
	ID          string
	LayerName   string
	Root        string // Everything owned by the invocation lives below Root.
	Dir         string // Installation root, archived as-is.
	CacheDir    string // Private installer cache, removed before archiving.
	HomeDir     string // Private installer home, removed with the cache.
	ArchivePath string // Output zip, kept outside Dir.
}

// PrivateDirs lists the installer-owned subtrees that must not be archived.
func (w *Workspace) PrivateDirs() []string {
	return []string{w.CacheDir, w.HomeDir}
}

// StorageReference points at a stored archive.
type StorageReference struct {
	Bucket string
	Key    string
}

// PublishRequest is what the registry needs to create a layer version.
type PublishRequest struct {
	LayerName               string
	Description             string
	Content                 StorageReference
	CompatibleRuntimes      []string
	CompatibleArchitectures []string
}

// LayerVersion is a registry record created by one successful pipeline run.
type LayerVersion struct {
	LayerName               string
	Description             string
	Content                 StorageReference
	CompatibleRuntimes      []string
	CompatibleArchitectures []string
	LayerArn                string
	LayerVersionArn         string
	Version                 int64
	CodeSize                int64
	CreatedAt               time.Time
}

// ArchiveStats summarises a produced archive.
type ArchiveStats struct {
	Path             string
	Files            int
	UncompressedSize int64
	CompressedSize   int64
}

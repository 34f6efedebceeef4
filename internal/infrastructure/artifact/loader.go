package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"store_sales/internal/domain/features"
	"store_sales/internal/domain/sales"
	"store_sales/pkg/logger"
)

// Artifact file names, one per object produced by the offline training run.
const (
	FileModel        = "model.json"
	FileFatEncoder   = "le_fat.json"
	FileSizeEncoder  = "le_size.json"
	FileLocEncoder   = "le_loc.json"
	FileTypeEncoder  = "le_type.json"
	FileOneHot       = "ohe.json"
	FileImputation   = "imputation_values.json"
	FileModelColumns = "model_columns.json"
)

var requiredFiles = []string{
	FileModel,
	FileFatEncoder,
	FileSizeEncoder,
	FileLocEncoder,
	FileTypeEncoder,
	FileOneHot,
	FileImputation,
	FileModelColumns,
}

const ModelTypeLinear = "linear"

type encoderDoc struct {
	Classes []string `json:"classes"`
}

type oneHotDoc struct {
	Feature    string   `json:"feature"`
	Categories []string `json:"categories"`
}

type modelDoc struct {
	Type         string             `json:"type"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

// Bundle is everything loaded from an artifacts directory.
type Bundle struct {
	Pipeline *features.Pipeline
	Model    sales.Regressor
}

// Load reads all artifacts from dir. If any file is absent it returns a
// *sales.MissingArtifactError naming every missing file and loads nothing.
func Load(dir string, log logger.Logger) (*Bundle, error) {
	var missing []string
	for _, name := range requiredFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, name)
				continue
			}
			return nil, fmt.Errorf("stat artifact %s: %w", name, err)
		}
	}
	if len(missing) > 0 {
		return nil, &sales.MissingArtifactError{Names: missing}
	}

	var columns []string
	if err := readJSON(dir, FileModelColumns, &columns); err != nil {
		return nil, err
	}

	var imputation features.ImputationTable
	if err := readJSON(dir, FileImputation, &imputation); err != nil {
		return nil, err
	}

	fat, err := loadEncoder(dir, FileFatEncoder, features.ColumnItemFatContent)
	if err != nil {
		return nil, err
	}
	size, err := loadEncoder(dir, FileSizeEncoder, features.ColumnOutletSize)
	if err != nil {
		return nil, err
	}
	loc, err := loadEncoder(dir, FileLocEncoder, features.ColumnOutletLocationType)
	if err != nil {
		return nil, err
	}
	outletType, err := loadEncoder(dir, FileTypeEncoder, features.ColumnOutletType)
	if err != nil {
		return nil, err
	}

	var ohe oneHotDoc
	if err := readJSON(dir, FileOneHot, &ohe); err != nil {
		return nil, err
	}
	if ohe.Feature == "" {
		ohe.Feature = features.ColumnItemCategory
	}
	category, err := features.NewOneHotEncoder(ohe.Feature, ohe.Categories)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", FileOneHot, err)
	}

	pipeline, err := features.NewPipeline(features.Artifacts{
		Imputation:         imputation,
		FatContent:         fat,
		OutletSize:         size,
		OutletLocationType: loc,
		OutletType:         outletType,
		ItemCategory:       category,
		Columns:            columns,
	})
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	var md modelDoc
	if err := readJSON(dir, FileModel, &md); err != nil {
		return nil, err
	}
	if md.Type != ModelTypeLinear {
		return nil, fmt.Errorf("artifact %s: unsupported model type %q", FileModel, md.Type)
	}
	model, err := NewLinearModel(columns, md.Coefficients, md.Intercept)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", FileModel, err)
	}

	if log != nil {
		log.Info("artifacts loaded",
			logger.String("dir", dir),
			logger.Int("columns", len(columns)),
			logger.String("model", md.Type),
		)
	}

	return &Bundle{Pipeline: pipeline, Model: model}, nil
}

func loadEncoder(dir, file, field string) (*features.CategoryEncoder, error) {
	var doc encoderDoc
	if err := readJSON(dir, file, &doc); err != nil {
		return nil, err
	}
	enc, err := features.NewCategoryEncoder(field, doc.Classes)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", file, err)
	}
	return enc, nil
}

func readJSON(dir, file string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", file, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode artifact %s: %w", file, err)
	}
	return nil
}

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tgienger/studyhub/internal/models"
)

//go:embed sample.yaml
var sampleData []byte

// file is the on-disk shape of a catalog.
type file struct {
	User      models.User       `yaml:"user"`
	Offerings []models.Offering `yaml:"offerings" validate:"dive"`
	Subjects  []models.Subject  `yaml:"subjects" validate:"dive"`
	Topics    []models.Topic    `yaml:"topics" validate:"dive"`
}

// Load reads a catalog from path, or the built-in sample data when path is empty.
func Load(path string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}

	data := sampleData
	source := "embedded"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		data, source = raw, path
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", source, err)
	}

	log.Info("catalog loaded",
		zap.String("source", source),
		zap.Int("subjects", len(c.subjects)),
		zap.Int("topics", len(c.topics)),
	)
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := validateFile(&f); err != nil {
		return nil, err
	}
	return newCatalog(f), nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("exam_board", func(fl validator.FieldLevel) bool {
		return models.ExamBoard(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("topic_status", func(fl validator.FieldLevel) bool {
		return models.TopicStatus(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return models.Difficulty(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("goal_type", func(fl validator.FieldLevel) bool {
		return models.GoalType(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("goal_unit", func(fl validator.FieldLevel) bool {
		return models.GoalUnit(fl.Field().String()).IsValid()
	})
	return v
}

// validateFile runs struct tag checks, then the cross-record checks tags
// cannot express.
func validateFile(f *file) error {
	var fieldErrs []models.FieldError

	if err := newValidator().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate catalog: %w", err)
		}
		for _, fe := range verrs {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q check", fe.Tag()),
			})
		}
	}

	subjects := make(map[string]bool, len(f.Subjects))
	for i, s := range f.Subjects {
		if subjects[s.ID] {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   fmt.Sprintf("subjects[%d].id", i),
				Message: fmt.Sprintf("duplicate subject id %q", s.ID),
			})
		}
		subjects[s.ID] = true
	}

	topicIDs := make(map[string]bool, len(f.Topics))
	for i, t := range f.Topics {
		if topicIDs[t.ID] {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   fmt.Sprintf("topics[%d].id", i),
				Message: fmt.Sprintf("duplicate topic id %q", t.ID),
			})
		}
		topicIDs[t.ID] = true
		if !subjects[t.SubjectID] {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   fmt.Sprintf("topics[%d].subject_id", i),
				Message: fmt.Sprintf("unknown subject %q", t.SubjectID),
			})
		}
	}

	if len(fieldErrs) > 0 {
		return &models.ValidationError{Errors: fieldErrs}
	}
	return nil
}

package referenceframe

import (
	_ "embed"
	"encoding/json"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

//go:embed data/psm.json
var psmModelJSON []byte

// ModelConfigJSON represents all supported fields in a kinematics JSON file.
type ModelConfigJSON struct {
	Name             string                  `json:"name"`
	KinParamType     string                  `json:"kinematic_param_type,omitempty"`
	DHParams         []DHParamConfig         `json:"dh_params"`
	GripperJawLength float64                 `json:"gripper_jaw_length"`
	BasePose         *spatialmath.PoseConfig `json:"base_pose,omitempty"`
}

// DHParamConfig is one row of the DH table as it appears in a JSON file. Angles are in radians and lengths in meters.
type DHParamConfig struct {
	ID         string  `json:"id"`
	A          float64 `json:"a"`
	D          float64 `json:"d"`
	Alpha      float64 `json:"alpha"`
	Offset     float64 `json:"offset"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Prismatic  bool    `json:"prismatic,omitempty"`
	Continuous bool    `json:"continuous,omitempty"`
}

// NewModelConfigJSON converts a model back into its file representation.
func NewModelConfigJSON(m *DHModel) *ModelConfigJSON {
	cfg := &ModelConfigJSON{
		Name:             m.name,
		KinParamType:     "DH",
		GripperJawLength: m.jawLength,
		BasePose:         spatialmath.NewPoseConfig(m.base),
	}
	for i, p := range m.params {
		cfg.DHParams = append(cfg.DHParams, DHParamConfig{
			ID:         jointName(p, i),
			A:          p.A,
			D:          p.D,
			Alpha:      p.Alpha,
			Offset:     p.Offset,
			Min:        p.Min,
			Max:        p.Max,
			Prismatic:  p.Prismatic,
			Continuous: p.Continuous,
		})
	}
	return cfg
}

// UnmarshalModelJSON will parse the given JSON data into a kinematics model. modelName sets the name of the model,
// will use the name from the JSON if string is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*DHModel, error) {
	// empty data probably means that the file has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	cfg := &ModelConfigJSON{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}

	return cfg.ParseConfig(modelName)
}

// ParseConfig converts the ModelConfigJSON struct into a full model with the name modelName.
func (cfg *ModelConfigJSON) ParseConfig(modelName string) (*DHModel, error) {
	if modelName == "" {
		modelName = cfg.Name
	}
	switch cfg.KinParamType {
	case "DH", "":
	default:
		return nil, NewUnsupportedParamTypeError(cfg.KinParamType)
	}

	table := make(DHTable, 0, len(cfg.DHParams))
	for _, dh := range cfg.DHParams {
		table = append(table, DHParameter{
			Name:       dh.ID,
			A:          dh.A,
			D:          dh.D,
			Alpha:      dh.Alpha,
			Offset:     dh.Offset,
			Min:        dh.Min,
			Max:        dh.Max,
			Prismatic:  dh.Prismatic,
			Continuous: dh.Continuous,
		})
	}

	var base spatialmath.Pose
	if cfg.BasePose != nil {
		var err error
		if base, err = cfg.BasePose.ParseConfig(); err != nil {
			return nil, errors.Wrap(err, "invalid base_pose")
		}
	}
	return NewDHModel(modelName, table, cfg.GripperJawLength, base)
}

// ParseModelJSONFile will read a given file and then parse the contained JSON data. Environment variables in the
// file, written as ${VAR}, are expanded before parsing.
func ParseModelJSONFile(filename, modelName string) (*DHModel, error) {
	jsonData, err := envsubst.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName)
}

// DefaultPSMModel returns the model of the da Vinci patient side manipulator.
func DefaultPSMModel() *DHModel {
	m, err := UnmarshalModelJSON(psmModelJSON, "")
	if err != nil {
		panic(errors.Wrap(err, "embedded PSM model is invalid"))
	}
	return m
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed traversal.yaml
var defaultYAML []byte

var ErrInvalidConfig = errors.New("config: invalid")

// Config is the full runtime configuration of the controller and its sandbox.
type Config struct {
	LogLevel  string    `yaml:"log_level" env:"LOG_LEVEL"`
	SentryDSN string    `yaml:"sentry_dsn" env:"SENTRY_DSN"`
	Traversal Traversal `yaml:"traversal"`
	Body      Body      `yaml:"body" envPrefix:"BODY_"`
	Montages  []Montage `yaml:"montages"`
}

// Traversal holds the tuning constants read by the traversal controller. It is
// passed by value and never mutated after load.
type Traversal struct {
	ClimbMontage   string `yaml:"climb_montage" env:"CLIMB_MONTAGE"`
	IndicatorClass string `yaml:"indicator_class" env:"INDICATOR_CLASS"`
	DebugDraw      bool   `yaml:"debug_draw" env:"DEBUG_DRAW"`

	MaxAimMoveRate float32 `yaml:"max_aim_move_rate" env:"MAX_AIM_MOVE_RATE"`
	BaseTurnRate   float32 `yaml:"base_turn_rate" env:"BASE_TURN_RATE"`
	BaseLookUpRate float32 `yaml:"base_look_up_rate" env:"BASE_LOOK_UP_RATE"`
	LookPitchMin   float32 `yaml:"look_pitch_min" env:"LOOK_PITCH_MIN"`
	LookPitchMax   float32 `yaml:"look_pitch_max" env:"LOOK_PITCH_MAX"`
	TraceOffset    float32 `yaml:"trace_offset" env:"TRACE_OFFSET"`

	ClimbForwardDistance float32 `yaml:"climb_forward_distance" env:"CLIMB_FORWARD_DISTANCE"`
	ClimbUpMinDistance   float32 `yaml:"climb_up_min_distance" env:"CLIMB_UP_MIN_DISTANCE"`
	ClimbUpMaxDistance   float32 `yaml:"climb_up_max_distance" env:"CLIMB_UP_MAX_DISTANCE"`
	ClimbUpFinishForward float32 `yaml:"climb_up_finish_forward" env:"CLIMB_UP_FINISH_FORWARD"`
	ClimbUpFinishHeight  float32 `yaml:"climb_up_finish_height" env:"CLIMB_UP_FINISH_HEIGHT"`
	ClimbUpMoveDuration  float32 `yaml:"climb_up_move_duration" env:"CLIMB_UP_MOVE_DURATION"`
	HangHorizontalOffset float32 `yaml:"hang_horizontal_offset" env:"HANG_HORIZONTAL_OFFSET"`
	HangVerticalOffset   float32 `yaml:"hang_vertical_offset" env:"HANG_VERTICAL_OFFSET"`
	HangMoveDuration     float32 `yaml:"hang_move_duration" env:"HANG_MOVE_DURATION"`
	HangRegrabDelay      float32 `yaml:"hang_regrab_delay" env:"HANG_REGRAB_DELAY"`
	LedgeMinFloorNormalZ float32 `yaml:"ledge_min_floor_normal_z" env:"LEDGE_MIN_FLOOR_NORMAL_Z"`
	LedgeMaxWallNormalZ  float32 `yaml:"ledge_max_wall_normal_z" env:"LEDGE_MAX_WALL_NORMAL_Z"`

	WallRunSideDistance            float32 `yaml:"wall_run_side_distance" env:"WALL_RUN_SIDE_DISTANCE"`
	WallRunMinHorizontalSpeed      float32 `yaml:"wall_run_min_horizontal_speed" env:"WALL_RUN_MIN_HORIZONTAL_SPEED"`
	WallRunMinVerticalVelocity     float32 `yaml:"wall_run_min_vertical_velocity" env:"WALL_RUN_MIN_VERTICAL_VELOCITY"`
	WallRunMinGravityScale         float32 `yaml:"wall_run_min_gravity_scale" env:"WALL_RUN_MIN_GRAVITY_SCALE"`
	WallRunVerticalSpeedMultiplier float32 `yaml:"wall_run_vertical_speed_multiplier" env:"WALL_RUN_VERTICAL_SPEED_MULTIPLIER"`
	WallRunOffset                  float32 `yaml:"wall_run_offset" env:"WALL_RUN_OFFSET"`
	WallRunGroundClearance         float32 `yaml:"wall_run_ground_clearance" env:"WALL_RUN_GROUND_CLEARANCE"`
	WallRunMaxCorrection           float32 `yaml:"wall_run_max_correction" env:"WALL_RUN_MAX_CORRECTION"`
	WallRunMinMoveMagnitude        float32 `yaml:"wall_run_min_move_magnitude" env:"WALL_RUN_MIN_MOVE_MAGNITUDE"`
	WallRunJumpOffSpeed            float32 `yaml:"wall_run_jump_off_speed" env:"WALL_RUN_JUMP_OFF_SPEED"`
	WallRunJumpUpSpeed             float32 `yaml:"wall_run_jump_up_speed" env:"WALL_RUN_JUMP_UP_SPEED"`
	WallRunRegrabDelay             float32 `yaml:"wall_run_regrab_delay" env:"WALL_RUN_REGRAB_DELAY"`

	CoverForwardDistance float32 `yaml:"cover_forward_distance" env:"COVER_FORWARD_DISTANCE"`
	CoverSideDistance    float32 `yaml:"cover_side_distance" env:"COVER_SIDE_DISTANCE"`
	CoverForwardOffset   float32 `yaml:"cover_forward_offset" env:"COVER_FORWARD_OFFSET"`
	CoverSideOffset      float32 `yaml:"cover_side_offset" env:"COVER_SIDE_OFFSET"`
	CoverAimYOffset      float32 `yaml:"cover_aim_y_offset" env:"COVER_AIM_Y_OFFSET"`
	CoverMoveDuration    float32 `yaml:"cover_move_duration" env:"COVER_MOVE_DURATION"`
	AimMoveDuration      float32 `yaml:"aim_move_duration" env:"AIM_MOVE_DURATION"`

	CameraCoverYOffset  float32 `yaml:"camera_cover_y_offset" env:"CAMERA_COVER_Y_OFFSET"`
	CameraAimYOffset    float32 `yaml:"camera_aim_y_offset" env:"CAMERA_AIM_Y_OFFSET"`
	CameraOffsetSpeed   float32 `yaml:"camera_offset_speed" env:"CAMERA_OFFSET_SPEED"`
	CameraBoomLength    float32 `yaml:"camera_boom_length" env:"CAMERA_BOOM_LENGTH"`
	CameraBoomAimLength float32 `yaml:"camera_boom_aim_length" env:"CAMERA_BOOM_AIM_LENGTH"`
	CameraProbeMargin   float32 `yaml:"camera_probe_margin" env:"CAMERA_PROBE_MARGIN"`
}

// Body tunes the sandbox kinematic capsule.
type Body struct {
	CapsuleRadius       float32 `yaml:"capsule_radius" env:"CAPSULE_RADIUS"`
	CapsuleHalfHeight   float32 `yaml:"capsule_half_height" env:"CAPSULE_HALF_HEIGHT"`
	Gravity             float32 `yaml:"gravity" env:"GRAVITY"`
	JumpZVelocity       float32 `yaml:"jump_z_velocity" env:"JUMP_Z_VELOCITY"`
	MaxJumpHoldTime     float32 `yaml:"max_jump_hold_time" env:"MAX_JUMP_HOLD_TIME"`
	MaxWalkSpeed        float32 `yaml:"max_walk_speed" env:"MAX_WALK_SPEED"`
	MaxAcceleration     float32 `yaml:"max_acceleration" env:"MAX_ACCELERATION"`
	BrakingDeceleration float32 `yaml:"braking_deceleration" env:"BRAKING_DECELERATION"`
	AirControl          float32 `yaml:"air_control" env:"AIR_CONTROL"`
	RotationRate        float32 `yaml:"rotation_rate" env:"ROTATION_RATE"`
	GroundProbeDistance float32 `yaml:"ground_probe_distance" env:"GROUND_PROBE_DISTANCE"`
}

// Montage describes an animation clip known to the sandbox animator.
type Montage struct {
	Name                string  `yaml:"name"`
	Duration            float32 `yaml:"duration"`
	BlendOutTriggerTime float32 `yaml:"blend_out_trigger_time"`
}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic("config: embedded defaults: " + err.Error())
	}
	return cfg
}

// Parse decodes YAML on top of zero values. Callers usually want Load.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Load layers the embedded defaults, the YAML file at path (skipped when path is
// empty or the file does not exist) and TRAVERSAL_* style environment overrides,
// then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TRAVERSAL_"}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Montage looks up a clip by name.
func (c Config) Montage(name string) (Montage, bool) {
	for _, m := range c.Montages {
		if m.Name == name {
			return m, true
		}
	}
	return Montage{}, false
}

// MaxJumpHeight is the apex of a jump at full gravity.
func (b Body) MaxJumpHeight() float32 {
	if b.Gravity <= 0 {
		return 0
	}
	return b.JumpZVelocity * b.JumpZVelocity / (2 * b.Gravity)
}

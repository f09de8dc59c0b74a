package config

import (
	"fmt"
	"strings"
)

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if err := c.Traversal.Validate(); err != nil {
		return err
	}
	if err := c.Body.Validate(); err != nil {
		return err
	}
	for _, m := range c.Montages {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: montage with empty name", ErrInvalidConfig)
		}
		if m.Duration <= 0 {
			return fmt.Errorf("%w: montage %s: duration must be positive", ErrInvalidConfig, m.Name)
		}
		if m.BlendOutTriggerTime < 0 || m.BlendOutTriggerTime > m.Duration {
			return fmt.Errorf("%w: montage %s: blend_out_trigger_time outside [0, duration]", ErrInvalidConfig, m.Name)
		}
	}
	if c.Traversal.ClimbMontage != "" && len(c.Montages) > 0 {
		if _, ok := c.Montage(c.Traversal.ClimbMontage); !ok {
			return fmt.Errorf("%w: climb_montage %q is not declared under montages", ErrInvalidConfig, c.Traversal.ClimbMontage)
		}
	}
	return nil
}

func (t Traversal) Validate() error {
	if t.ClimbMontage == "" {
		return fmt.Errorf("%w: climb_montage is required", ErrInvalidConfig)
	}
	if t.IndicatorClass == "" {
		return fmt.Errorf("%w: indicator_class is required", ErrInvalidConfig)
	}

	nonNegative := []struct {
		key string
		v   float32
	}{
		{"max_aim_move_rate", t.MaxAimMoveRate},
		{"trace_offset", t.TraceOffset},
		{"climb_forward_distance", t.ClimbForwardDistance},
		{"climb_up_min_distance", t.ClimbUpMinDistance},
		{"climb_up_max_distance", t.ClimbUpMaxDistance},
		{"climb_up_move_duration", t.ClimbUpMoveDuration},
		{"hang_move_duration", t.HangMoveDuration},
		{"hang_regrab_delay", t.HangRegrabDelay},
		{"wall_run_side_distance", t.WallRunSideDistance},
		{"wall_run_min_horizontal_speed", t.WallRunMinHorizontalSpeed},
		{"wall_run_ground_clearance", t.WallRunGroundClearance},
		{"wall_run_max_correction", t.WallRunMaxCorrection},
		{"wall_run_min_move_magnitude", t.WallRunMinMoveMagnitude},
		{"wall_run_jump_off_speed", t.WallRunJumpOffSpeed},
		{"wall_run_regrab_delay", t.WallRunRegrabDelay},
		{"cover_forward_distance", t.CoverForwardDistance},
		{"cover_side_distance", t.CoverSideDistance},
		{"cover_move_duration", t.CoverMoveDuration},
		{"aim_move_duration", t.AimMoveDuration},
		{"camera_offset_speed", t.CameraOffsetSpeed},
		{"camera_boom_length", t.CameraBoomLength},
		{"camera_boom_aim_length", t.CameraBoomAimLength},
		{"camera_probe_margin", t.CameraProbeMargin},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %v)", ErrInvalidConfig, f.key, f.v)
		}
	}

	if t.MaxAimMoveRate > 1 {
		return fmt.Errorf("%w: max_aim_move_rate must be within [0, 1]", ErrInvalidConfig)
	}
	if t.ClimbUpMinDistance > t.ClimbUpMaxDistance {
		return fmt.Errorf("%w: climb_up_min_distance exceeds climb_up_max_distance", ErrInvalidConfig)
	}
	if t.LookPitchMin >= t.LookPitchMax {
		return fmt.Errorf("%w: look_pitch_min must be below look_pitch_max", ErrInvalidConfig)
	}
	if t.WallRunMinGravityScale <= 0 || t.WallRunMinGravityScale > 1 {
		return fmt.Errorf("%w: wall_run_min_gravity_scale must be within (0, 1]", ErrInvalidConfig)
	}
	if t.LedgeMinFloorNormalZ < 0 || t.LedgeMinFloorNormalZ > 1 || t.LedgeMaxWallNormalZ < 0 || t.LedgeMaxWallNormalZ > 1 {
		return fmt.Errorf("%w: ledge normal thresholds must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}

func (b Body) Validate() error {
	if b.CapsuleRadius <= 0 || b.CapsuleHalfHeight < b.CapsuleRadius {
		return fmt.Errorf("%w: capsule needs radius > 0 and half height >= radius", ErrInvalidConfig)
	}
	if b.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive", ErrInvalidConfig)
	}
	if b.MaxWalkSpeed <= 0 || b.MaxAcceleration <= 0 {
		return fmt.Errorf("%w: max_walk_speed and max_acceleration must be positive", ErrInvalidConfig)
	}
	if b.AirControl < 0 || b.AirControl > 1 {
		return fmt.Errorf("%w: air_control must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}

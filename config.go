// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import "github.com/mstoykov/envconfig"

// envParams mirrors Params with envconfig tags, grounded on grafana-k6's
// cloudapi.Config (cloudapi/config.go), which uses the same
// github.com/mstoykov/envconfig field-tag pattern to let deployments
// override tunables without a CLI flag (CLI is out of scope here, see
// spec.md §1 Non-goals).
type envParams struct {
	WindowLog      int  `envconfig:"LDM_WINDOW_LOG"`
	HashLog        int  `envconfig:"LDM_HASH_LOG"`
	BucketSizeLog  int  `envconfig:"LDM_BUCKET_SIZE_LOG"`
	MinMatchLength int  `envconfig:"LDM_MIN_MATCH_LENGTH"`
	HashRateLog    int  `envconfig:"LDM_HASH_RATE_LOG"`
	EnableLDM      bool `envconfig:"LDM_ENABLE"`
}

// LoadParamsFromEnv reads LDM_WINDOW_LOG, LDM_HASH_LOG, LDM_BUCKET_SIZE_LOG,
// LDM_MIN_MATCH_LENGTH, LDM_HASH_RATE_LOG, and LDM_ENABLE from the process
// environment into a Params value. Unset variables leave the corresponding
// field zero, which Params.adjust (invoked by New) will then default.
func LoadParamsFromEnv() (Params, error) {
	var e envParams
	if err := envconfig.Process("", &e); err != nil {
		return Params{}, err
	}
	return Params{
		WindowLog:      e.WindowLog,
		HashLog:        e.HashLog,
		BucketSizeLog:  e.BucketSizeLog,
		MinMatchLength: e.MinMatchLength,
		HashRateLog:    e.HashRateLog,
		EnableLDM:      e.EnableLDM,
	}, nil
}

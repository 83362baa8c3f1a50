package config

// mergeSettings merges override settings into base
func mergeSettings(base, override *Settings) *Settings {
	result := *base

	if override.ConfigName != "" {
		result.ConfigName = override.ConfigName
	}
	if override.Strict != nil {
		strict := *override.Strict
		result.Strict = &strict
	}
	if override.Indent > 0 {
		result.Indent = override.Indent
	}

	// Merge sections
	if override.Sections != nil {
		merged := make(map[string]interface{}, len(base.Sections)+len(override.Sections))
		for key, value := range base.Sections {
			merged[key] = value
		}
		for key, value := range override.Sections {
			// If both base and override have the same table, merge them
			if baseValue, exists := merged[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						merged[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			merged[key] = value
		}
		result.Sections = merged
	}

	return &result
}

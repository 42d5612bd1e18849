package season

// Config describes one scoring campaign: which historical years train
// the model and which years get scored. A campaign file is the single
// input a full pipeline run needs beyond the indicator tables.
type Config struct {
	Meta     Meta     `yaml:"meta" json:"meta"`
	Training Training `yaml:"training" json:"training"`
	Scoring  Scoring  `yaml:"scoring" json:"scoring"`
}

// Meta identifies the campaign
type Meta struct {
	CampaignID string `yaml:"campaign_id" json:"campaign_id"`
	Crop       string `yaml:"crop" json:"crop"`
	Timezone   string `yaml:"timezone" json:"timezone"`
}

// Training lists the historical years pooled for weight learning
type Training struct {
	Years []int `yaml:"years" json:"years"`
}

// Scoring lists the years the trained model is applied to
type Scoring struct {
	Years []int `yaml:"years" json:"years"`
}

package config

const (
	defaultOrgID           = "548"
	defaultOrgSlug         = "michigan-tech"
	defaultOrgName         = "Michigan Tech"
	defaultFeedURL         = "https://www.eliteprospects.com/rss/transfers"
	defaultFeedTimeout     = 15
	defaultProfilesBaseURL = "https://www.eliteprospects.com"
	defaultProfilesLeague  = "NCAA"
	defaultProfilesTimeout = 15
	defaultCredentialsFile = "~/.config/huskywatch/credentials.json"
	defaultTokenFile       = "~/.config/huskywatch/token.json"
	defaultStateDir        = "~/.local/state/huskywatch"
	defaultRetentionDays   = 14
	defaultNotifyTimeout   = 10
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// defaultPeerIDs lists the organization identifiers in the tracked org's
// competitive tier (NCAA Division I). Feed transfers that stay inside this set
// surface through the portal spreadsheets instead.
var defaultPeerIDs = []string{
	"2453", "1252", "18066", "1273", "35387", "790", "2319", "911", "633",
	"1214", "1320", "1583", "685", "913", "1859", "706", "840", "1917", "728",
	"1339", "1792", "35273", "30556", "1866", "1871", "1248", "1157", "548",
	"1520", "2110", "1465", "925", "1549", "2118", "1551", "713", "2078",
	"2039", "1543", "1758", "2299", "773", "1772", "4991", "1038", "1366",
	"1915", "2071", "1362", "2034", "606", "1074", "803", "776", "1794",
	"708", "1136", "1137", "1554", "2745", "710", "452", "1250", "786",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Org: Org{
			ID:      defaultOrgID,
			Slug:    defaultOrgSlug,
			Name:    defaultOrgName,
			Aliases: []string{"Michigan Technological University", "Michigan Tech"},
			PeerIDs: append([]string(nil), defaultPeerIDs...),
		},
		Feed: Feed{
			URL:            defaultFeedURL,
			RequestTimeout: defaultFeedTimeout,
		},
		Profiles: Profiles{
			BaseURL:        defaultProfilesBaseURL,
			League:         defaultProfilesLeague,
			RequestTimeout: defaultProfilesTimeout,
		},
		Portal: Portal{
			CredentialsFile: defaultCredentialsFile,
			TokenFile:       defaultTokenFile,
		},
		State: State{
			Dir:           defaultStateDir,
			RetentionDays: defaultRetentionDays,
		},
		Notify: Notify{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

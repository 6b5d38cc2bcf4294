package platform

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "CardAlign"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is reported to notification centers that group by sender.
	AppName string
	// IconPath points to an image file shown with the notification where the
	// platform supports it.
	IconPath string
	// TimeoutMs is the display time hint; zero uses the platform default.
	TimeoutMs int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

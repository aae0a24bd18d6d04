// Package logging provides the structured logger shared by the cardeditor
// commands and server.
//
// Logging is silent unless a level is configured, either explicitly or via
// the CARDEDITOR_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.Info("editor loaded", zap.String("editor", id))
//
// Library packages never reach for the global logger; they accept a
// *zap.Logger through options and the commands hand them logging.GetLogger().
package logging

package workers

import (
	"fmt"

	"go.uber.org/zap"
	ftpserver "goftp.io/server/v2"
	"goftp.io/server/v2/driver/file"
)

// anonymousAuth accepts every login; the FTP front door is an open drop box on
// a trusted network, mirroring the watcher's local drop folder.
type anonymousAuth struct{}

func (anonymousAuth) CheckPasswd(ctx *ftpserver.Context, name, password string) (bool, error) {
	zap.L().Info("ftp login", zap.String("user", name))
	return true, nil
}

// NewFTPServer builds the file-transfer front door. Every session is rooted at
// the intake directory the watcher observes, so transferred files flow through
// the exact same arrival logic as local drops; the FTP layer itself performs
// no image work.
func NewFTPServer(intakeRoot string, port int) (*ftpserver.Server, error) {
	driver, err := file.NewDriver(intakeRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to create ftp driver for '%s': %w", intakeRoot, err)
	}

	srv, err := ftpserver.NewServer(&ftpserver.Options{
		Name:   "eventpix-intake",
		Driver: driver,
		Port:   port,
		Auth:   anonymousAuth{},
		Perm:   ftpserver.NewSimplePerm("root", "root"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ftp server: %w", err)
	}
	return srv, nil
}

// Package backup manages the volume snapshot lifecycle: one-shot
// archives, restore with an explicit destructive-wipe confirmation,
// mtime-based retention pruning, and a marked crontab entry for
// recurring backups.
//
// Archives are plain gzip-compressed tars of the volume root, created
// and extracted by ephemeral containers so the host never mounts the
// volume itself. The crontab entry runs the backup command, which
// prunes expired archives after each successful snapshot.
package backup

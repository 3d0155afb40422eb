// Package paths provides centralized path handling for setup.
//
// It resolves the three locations every run needs:
//
//   - the repository root holding one directory per package
//     (--root flag, DOTFILES_ROOT, the enclosing git repository, or the
//     current directory as a last resort)
//   - the link target directory (--target flag, HOME, or the user's home)
//   - the backup root, a reserved directory under the repository root
//
// # Usage
//
//	p, err := paths.New(paths.Options{})
//	if err != nil {
//	    return err
//	}
//	p.Root()                        // /home/user/dotfiles
//	p.PackagePath("vim")            // /home/user/dotfiles/vim
//	p.PackageBackupDir("vim")       // /home/user/dotfiles/_backup/vim
//	p.TargetPath(".vimrc")          // /home/user/.vimrc
package paths

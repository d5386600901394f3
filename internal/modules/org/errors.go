package org

import "errors"

var ErrSlugTaken = errors.New("organization slug already taken")

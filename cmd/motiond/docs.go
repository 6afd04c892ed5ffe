package main

// General API documentation for swaggo. Build with -tags=swagger to serve it
// at /swagger/.
//
// @title           motiond API
// @version         1.0
// @description     Text-to-motion generation daemon. Submit a natural-language
// @description     prompt and receive joint rotations, root translations and
// @description     optional 3D keypoints at a fixed 20 fps.
//
// @BasePath  /
//
// @schemes http

package constants

// verification policy. these values are part of the verdict contract and are
// not configurable.

const FACE_MATCH_THRESHOLD float64 = 0.65 // strictly greater than
const AGE_TOLERANCE_YEARS int = 6         // inclusive
const MIN_MATCHING_NAME_TOKENS int = 2    // tokens of the proof name corroborated by the id name
const MAX_TOKEN_EDIT_DISTANCE int = 1

// preprocessing geometry
const FACE_TENSOR_SIZE int = 160
const FACE_TENSOR_CHANNELS int = 3
const OCR_TARGET_WIDTH int = 2000
const DETECTION_FRAME_MAX_SIDE int = 1280

// ocr engine settings
const OCR_LANGUAGES = "fra+eng"
const OCR_CHAR_WHITELIST = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789ÀÂÇÉÈÊËÎÏÔÙÛÜàâçéèêëîïôùûü -./:"

// output artifacts
const RESULT_FILE_NAME = "result.txt"
const STATUS_DESCRIPTOR_FILE_NAME = "computed.json"
const DESCRIPTOR_OUTPUT_PATH_KEY = "deterministic-output-path"
const DESCRIPTOR_ERROR_MESSAGE_KEY = "error-message"

const DATE_LAYOUT = "02/01/2006"
